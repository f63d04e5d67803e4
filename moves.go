package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/notnil/chess"

	"chessview/bigdec"
	"chessview/bview"
)

// match drives a chess game against the view core: every move becomes
// piece animations, and each finished game restarts on a board placed
// squares further from origin, squaring the offset every time so the
// coordinates leave float64 range after a few games.
type match struct {
	sess *bview.Session
	game *chess.Game

	script []*chess.Move
	next   int

	origin bview.Coord
	shift  bigdec.Dec

	lastMove  time.Time
	moveCount int
	gameCount int
}

func newMatch(sess *bview.Session, pgnPath string) *match {
	m := &match{
		sess:   sess,
		origin: bview.C(0, 0),
		shift:  bigdec.New(1000),
	}
	if pgnPath != "" {
		if script, err := loadPGNMoves(pgnPath); err != nil {
			logError("load pgn %s: %v", pgnPath, err)
		} else {
			m.script = script
		}
	}
	m.game = chess.NewGame()
	return m
}

func loadPGNMoves(path string) ([]*chess.Move, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pgn, err := chess.PGN(f)
	if err != nil {
		return nil, err
	}
	return chess.NewGame(pgn).Moves(), nil
}

// update plays the next move once the previous animation has settled
// and the move delay has passed.
func (m *match) update(now time.Time) {
	if m.sess.IsTeleporting() || len(m.sess.Animations()) > 0 {
		m.lastMove = now
		return
	}
	if now.Sub(m.lastMove) < time.Duration(gs.MoveDelayMS)*time.Millisecond {
		return
	}
	m.lastMove = now

	if m.game.Outcome() != chess.NoOutcome {
		m.restart()
		return
	}
	mv := m.pickMove()
	if mv == nil {
		m.restart()
		return
	}
	m.playMove(mv)
}

func (m *match) pickMove() *chess.Move {
	if m.script != nil {
		if m.next >= len(m.script) {
			return nil
		}
		mv := m.script[m.next]
		m.next++
		return mv
	}
	valid := m.game.ValidMoves()
	if len(valid) == 0 {
		return nil
	}
	return valid[rand.Intn(len(valid))]
}

// playMove converts one legal move into animations, applies it to the
// game, and reframes the camera if the action left the screen.
func (m *match) playMove(mv *chess.Move) {
	pos := m.game.Position()
	mover := pos.Board().Piece(mv.S1())

	from := m.squareCoord(mv.S1())
	to := m.squareCoord(mv.S2())

	waypoints := []bview.Coord{from, to}
	if mover.Type() == chess.Knight {
		// Walk the long leg first so the L-shape reads.
		mid := bview.Coord{X: from.X.Copy(), Y: to.Y.Copy()}
		if fileDelta(mv) > rankDelta(mv) {
			mid = bview.Coord{X: to.X.Copy(), Y: from.Y.Copy()}
		}
		waypoints = []bview.Coord{from, mid, to}
	}

	capture := mv.HasTag(chess.Capture) || mv.HasTag(chess.EnPassant)
	spec := bview.AnimationSpec{
		Type:      pieceType(mover),
		Waypoints: waypoints,
		Capture:   capture,
		Hide:      map[int][]bview.Coord{0: {to}},
	}
	if capture {
		victimSq := mv.S2()
		if mv.HasTag(chess.EnPassant) {
			victimSq = squareOf(mv.S2().File(), mv.S1().Rank())
		}
		victim := pos.Board().Piece(victimSq)
		victimAt := m.squareCoord(victimSq)
		spec.Show = map[int][]bview.Placement{
			0: {{Type: pieceType(victim), Coords: victimAt}},
		}
		spec.Hide[len(waypoints)-1] = append(spec.Hide[len(waypoints)-1], victimAt)
	}

	if err := m.game.Move(mv); err != nil {
		logError("apply move %v: %v", mv, err)
		return
	}
	m.moveCount++
	m.sess.AnimatePiece(spec)

	if rookFrom, rookTo, ok := castleRookSquares(mv, mover); ok {
		rf := m.squareCoord(rookFrom)
		rt := m.squareCoord(rookTo)
		rook := chess.WhiteRook
		if mover.Color() == chess.Black {
			rook = chess.BlackRook
		}
		m.sess.AnimatePiece(bview.AnimationSpec{
			Type:       pieceType(rook),
			Waypoints:  []bview.Coord{rf, rt},
			Hide:       map[int][]bview.Coord{0: {rt}},
			KeepOthers: true,
		})
	}

	view := bview.CurrentViewBox(m.sess)
	if !view.Contains(from) || !view.Contains(to) {
		area := bview.CalculateFromCoordsList(m.sess, []bview.Coord{from, to})
		bview.InitTransitionFromArea(m.sess, area)
	}
}

// restart squares the board offset, starts a fresh game there, and
// frames the new board, which runs the teleport path once the offset is
// large.
func (m *match) restart() {
	m.gameCount++
	m.shift = m.shift.Mul(m.shift)
	m.origin = bview.Coord{X: m.shift.Copy(), Y: m.shift.Copy()}
	m.game = chess.NewGame()
	m.next = 0
	m.sess.ClearAnimations(true)

	corners := []bview.Coord{
		m.origin,
		{X: m.origin.X.Add(bigdec.New(7)), Y: m.origin.Y.Add(bigdec.New(7))},
	}
	area := bview.CalculateFromCoordsList(m.sess, corners)
	bview.InitTransitionFromArea(m.sess, area)
}

func (m *match) squareCoord(sq chess.Square) bview.Coord {
	return squareAt(m, int(sq.File()), int(sq.Rank()))
}

func squareAt(m *match, file, rank int) bview.Coord {
	return bview.Coord{
		X: m.origin.X.Add(bigdec.FromInt(int64(file))),
		Y: m.origin.Y.Add(bigdec.FromInt(int64(rank))),
	}
}

func boardCenter(m *match) bview.Coord {
	return bview.Coord{
		X: m.origin.X.Add(bigdec.New(3.5)),
		Y: m.origin.Y.Add(bigdec.New(3.5)),
	}
}

func pieceAtSquare(b *chess.Board, file, rank int) bview.PieceType {
	p := b.Piece(squareOf(chess.File(file), chess.Rank(rank)))
	if p == chess.NoPiece {
		return ""
	}
	return pieceType(p)
}

// squareOf builds a Square from file and rank; squares are numbered
// rank-major from a1.
func squareOf(f chess.File, r chess.Rank) chess.Square {
	return chess.Square(int(r)*8 + int(f))
}

func fileDelta(mv *chess.Move) int {
	d := int(mv.S2().File()) - int(mv.S1().File())
	if d < 0 {
		d = -d
	}
	return d
}

func rankDelta(mv *chess.Move) int {
	d := int(mv.S2().Rank()) - int(mv.S1().Rank())
	if d < 0 {
		d = -d
	}
	return d
}

func pieceType(p chess.Piece) bview.PieceType {
	side := "w"
	if p.Color() == chess.Black {
		side = "b"
	}
	letter := ""
	switch p.Type() {
	case chess.King:
		letter = "K"
	case chess.Queen:
		letter = "Q"
	case chess.Rook:
		letter = "R"
	case chess.Bishop:
		letter = "B"
	case chess.Knight:
		letter = "N"
	case chess.Pawn:
		letter = "P"
	}
	return bview.PieceType(side + letter)
}

// castleRookSquares returns the rook's move for a castling king move.
func castleRookSquares(mv *chess.Move, mover chess.Piece) (from, to chess.Square, ok bool) {
	if mover.Type() != chess.King {
		return 0, 0, false
	}
	rank := mv.S1().Rank()
	switch {
	case mv.HasTag(chess.KingSideCastle):
		return squareOf(chess.FileH, rank), squareOf(chess.FileF, rank), true
	case mv.HasTag(chess.QueenSideCastle):
		return squareOf(chess.FileA, rank), squareOf(chess.FileD, rank), true
	}
	return 0, 0, false
}
