package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notnil/chess"

	"chessview/bigdec"
	"chessview/bview"
)

func TestPieceTypeMapping(t *testing.T) {
	cases := []struct {
		piece chess.Piece
		want  bview.PieceType
	}{
		{chess.WhiteKing, "wK"},
		{chess.WhiteKnight, "wN"},
		{chess.BlackPawn, "bP"},
		{chess.BlackQueen, "bQ"},
	}
	for _, tc := range cases {
		if got := pieceType(tc.piece); got != tc.want {
			t.Fatalf("pieceType(%v) = %v, want %v", tc.piece, got, tc.want)
		}
	}
}

func TestCastleRookSquares(t *testing.T) {
	g := chess.NewGame()
	for _, mv := range []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "O-O"} {
		if err := g.MoveStr(mv); err != nil {
			t.Fatalf("move %s: %v", mv, err)
		}
	}
	moves := g.Moves()
	castle := moves[len(moves)-1]
	if !castle.HasTag(chess.KingSideCastle) {
		t.Fatalf("expected a kingside castle, got %v", castle)
	}
	from, to, ok := castleRookSquares(castle, chess.WhiteKing)
	if !ok {
		t.Fatalf("castle not recognized")
	}
	if from != chess.H1 || to != chess.F1 {
		t.Fatalf("rook %v -> %v, want h1 -> f1", from, to)
	}
	if _, _, ok := castleRookSquares(castle, chess.WhiteQueen); ok {
		t.Fatalf("non-king mover must not castle")
	}
}

// Square coordinates are the board origin plus file and rank, and the
// origin can sit far outside float64 range.
func TestSquareCoordDistantOrigin(t *testing.T) {
	far, err := bigdec.Parse("1e30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := &match{origin: bview.Coord{X: far, Y: far}}

	a1 := m.squareCoord(chess.A1)
	if a1.X.Cmp(far) != 0 || a1.Y.Cmp(far) != 0 {
		t.Fatalf("a1 = %v,%v, want origin", a1.X, a1.Y)
	}
	h8 := m.squareCoord(chess.H8)
	if h8.X.Sub(far).Float64() != 7 || h8.Y.Sub(far).Float64() != 7 {
		t.Fatalf("h8 offset = %v,%v, want 7,7", h8.X.Sub(far), h8.Y.Sub(far))
	}
}

func TestLoadPGNMoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.pgn")
	pgn := "1. e4 e5 2. Nf3 Nc6 *\n"
	if err := os.WriteFile(path, []byte(pgn), 0644); err != nil {
		t.Fatalf("write pgn: %v", err)
	}
	moves, err := loadPGNMoves(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(moves) != 4 {
		t.Fatalf("got %d moves, want 4", len(moves))
	}
	if moves[0].S1() != chess.E2 || moves[0].S2() != chess.E4 {
		t.Fatalf("first move %v, want e2e4", moves[0])
	}
}
