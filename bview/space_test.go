package bview

import (
	"testing"

	"chessview/bigdec"
)

// worldSpaceToBoard(boardToWorldSpace(c)) == c for scales spanning six
// orders of magnitude, within the float64 leg's precision.
func TestBoardWorldRoundTrip(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetPosition(C(3, -2))
	coords := []Coord{C(3.5, -2.5), C(10, 4), C(3, -2)}
	for _, scale := range []float64{1e-3, 1e-2, 0.1, 1, 10, 100, 1e3} {
		b.SetScale(dec(scale))
		for _, c := range coords {
			w := BoardToWorld(b, c)
			back := WorldToBoard(b, w)
			if !approx(back.X.Float64(), c.X.Float64(), 1e-9) ||
				!approx(back.Y.Float64(), c.Y.Float64(), 1e-9) {
				t.Fatalf("scale %v: round trip %v,%v -> %v,%v",
					scale, c.X, c.Y, back.X, back.Y)
			}
		}
	}
}

// The exact transform must agree with the float fast path when both are
// in range.
func TestFastPathAgreesInSafeRange(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetPosition(C(7, 9))
	b.SetScale(dec(0.25))
	exact := BoardToWorld(b, C(12, -4))
	fast := BoardToWorldFloat(b, 12, -4)
	if !approx(exact.X, fast.X, 1e-12) || !approx(exact.Y, fast.Y, 1e-12) {
		t.Fatalf("fast path diverges: %v vs %v", exact, fast)
	}
}

// Distant coordinates survive the bigdec leg: a coordinate 1e30 squares
// out at scale 1e-28 lands at a small, correct world offset.
func TestDistantCoordinateTransform(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	far, err := bigdec.Parse("1e30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b.SetPosition(Coord{far, dec(0)})
	b.SetScale(dec(1e-28))

	// One square right of the board position.
	c := Coord{far.Add(dec(1)), dec(0)}
	w := BoardToWorld(b, c)
	if !approx(w.X, 1e-28, 1e-40) || w.Y != 0 {
		t.Fatalf("world offset = %v", w)
	}
}

func TestWorldPixelRoundTrip(t *testing.T) {
	e := newTestEnv()
	cam := e.sess.Cam
	for _, w := range []Vec2{{0, 0}, {1.5, -2.25}, {-3, 3}} {
		p := WorldToPixel(cam, w)
		back := PixelToWorld(cam, p)
		if !approx(back.X, w.X, 1e-12) || !approx(back.Y, w.Y, 1e-12) {
			t.Fatalf("round trip %v -> %v", w, back)
		}
	}
	// World origin maps to the pixel center.
	center := WorldToPixel(cam, Vec2{})
	pw, ph := cam.PixelSize()
	if center.X != pw/2 || center.Y != ph/2 {
		t.Fatalf("origin maps to %v, want center", center)
	}
}

// The screen-ready square box is the board-space box scaled and offset.
func TestSquareBoxes(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetScale(dec(4))

	board := SquareBoxBoard()
	if board.Right-board.Left != 1 || board.Top-board.Bottom != 1 {
		t.Fatalf("board-space square should be unit sized: %+v", board)
	}

	world := SquareBoxWorld(b, C(2, 3))
	if !approx(world.Right-world.Left, 4, 1e-12) {
		t.Fatalf("world square width = %v, want scale 4", world.Right-world.Left)
	}
	c := BoardToWorld(b, C(2, 3))
	if !approx(world.Left, c.X+board.Left*4, 1e-12) {
		t.Fatalf("world square offset wrong: %+v", world)
	}
}
