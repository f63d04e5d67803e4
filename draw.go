package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chessview/bview"
)

var (
	boardBG    color.RGBA
	boardLight color.RGBA
	boardDark  color.RGBA
	boardMark  color.RGBA
)

func setBoardTheme(name string) {
	if name == "dark" {
		boardBG = color.RGBA{24, 24, 28, 255}
		boardLight = color.RGBA{120, 115, 105, 255}
		boardDark = color.RGBA{70, 66, 60, 255}
		boardMark = color.RGBA{200, 170, 60, 255}
	} else {
		boardBG = color.RGBA{235, 232, 225, 255}
		boardLight = color.RGBA{238, 216, 182, 255}
		boardDark = color.RGBA{170, 130, 95, 255}
		boardMark = color.RGBA{200, 120, 40, 255}
	}
}

// drawScene renders the full frame: background, the current game's
// board, pieces, and in-flight animations. Far below the pixel
// thresholds the board collapses to a marker instead of geometry.
func drawScene(screen *ebiten.Image, g *Game) {
	screen.Fill(boardBG)
	sess := g.sess

	if sess.Board.TilesArePoints(sess.Cam) {
		drawBoardMarker(screen, g)
		return
	}

	miniMode := sess.Board.TilesSmallerThanVirtualPixel(sess.Cam)
	drawSquares(screen, g, miniMode)
	if !miniMode {
		drawPieces(screen, g)
	}
}

// drawBoardMarker draws the whole board as one fixed-size dot so it
// stays findable at any zoom-out.
func drawBoardMarker(screen *ebiten.Image, g *Game) {
	center := boardCenter(g.match)
	w := bview.BoardToWorld(g.sess.Board, center)
	p := bview.WorldToPixel(g.sess.Cam, w)
	if !onScreen(screen, p, 8) {
		return
	}
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 5, boardMark, true)
}

func drawSquares(screen *ebiten.Image, g *Game, miniMode bool) {
	sess := g.sess
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			c := squareAt(g.match, file, rank)
			box := bview.SquareBoxWorld(sess.Board, c)
			tl := bview.WorldToPixel(sess.Cam, bview.Vec2{X: box.Left, Y: box.Top})
			br := bview.WorldToPixel(sess.Cam, bview.Vec2{X: box.Right, Y: box.Bottom})
			if offScreenRect(screen, tl, br) {
				continue
			}
			clr := boardDark
			if (file+rank)%2 == 1 {
				clr = boardLight
			}
			if miniMode {
				clr = boardMark
			}
			vector.DrawFilledRect(screen,
				float32(tl.X), float32(tl.Y),
				float32(br.X-tl.X), float32(br.Y-tl.Y), clr, false)
		}
	}
}

// drawPieces draws the logical board through the animation overlay:
// squares masked by an animation are skipped, revealed placements are
// added, and each animated piece draws at its interpolated position.
func drawPieces(screen *ebiten.Image, g *Game) {
	now := g.now
	var hidden []bview.Coord
	var shown []bview.Placement

	for _, a := range g.sess.Animations() {
		show, hide := a.Visibility(now)
		hidden = append(hidden, hide...)
		shown = append(shown, show...)
	}

	board := g.match.game.Position().Board()
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			pc := pieceAtSquare(board, file, rank)
			if pc == "" {
				continue
			}
			c := squareAt(g.match, file, rank)
			if coordHidden(c, hidden) {
				continue
			}
			drawPieceSprite(screen, g, pc, c)
		}
	}

	for _, pl := range shown {
		if coordHidden(pl.Coords, hidden) {
			continue
		}
		drawPieceSprite(screen, g, pl.Type, pl.Coords)
	}

	for _, a := range g.sess.Animations() {
		if a.Instant() {
			continue
		}
		drawPieceSprite(screen, g, a.Type, a.CurrentPosition(now))
	}
}

func drawPieceSprite(screen *ebiten.Image, g *Game, pt bview.PieceType, c bview.Coord) {
	img := pieceSprite(pt)
	if img == nil {
		return
	}
	sess := g.sess
	box := bview.SquareBoxWorld(sess.Board, c)
	tl := bview.WorldToPixel(sess.Cam, bview.Vec2{X: box.Left, Y: box.Top})
	br := bview.WorldToPixel(sess.Cam, bview.Vec2{X: box.Right, Y: box.Bottom})
	if offScreenRect(screen, tl, br) {
		return
	}
	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale((br.X-tl.X)/spriteSize, (br.Y-tl.Y)/spriteSize)
	op.GeoM.Translate(tl.X, tl.Y)
	screen.DrawImage(img, &op)
}

func onScreen(screen *ebiten.Image, p bview.Vec2, margin float64) bool {
	b := screen.Bounds()
	return p.X >= -margin && p.Y >= -margin &&
		p.X <= float64(b.Dx())+margin && p.Y <= float64(b.Dy())+margin
}

func offScreenRect(screen *ebiten.Image, tl, br bview.Vec2) bool {
	b := screen.Bounds()
	return br.X < 0 || br.Y < 0 || tl.X > float64(b.Dx()) || tl.Y > float64(b.Dy())
}

func coordHidden(c bview.Coord, hidden []bview.Coord) bool {
	for _, h := range hidden {
		if c.X.Cmp(h.X) == 0 && c.Y.Cmp(h.Y) == 0 {
			return true
		}
	}
	return false
}
