package bview

import (
	"math"
	"testing"

	"chessview/bigdec"
)

func TestCalculateFromCoordsListPanicsOnEmpty(t *testing.T) {
	e := newTestEnv()
	defer func() {
		if recover() == nil {
			t.Fatalf("empty coordinate list should panic")
		}
	}()
	CalculateFromCoordsList(e.sess, nil)
}

// scale == min(W/w, H/h, screenHeight/minVisibleTiles), exactly.
func TestCalcScaleToMatchSides(t *testing.T) {
	e := newTestEnv()
	screen := e.sess.Cam.ScreenBox()
	cases := []struct{ w, h float64 }{
		{1, 1},
		{100, 10},
		{10, 100},
		{0.001, 0.001},
		{1e6, 2e6},
	}
	for _, tc := range cases {
		got := calcScaleToMatchSides(e.sess, dec(tc.w), dec(tc.h)).Float64()
		want := math.Min(screen.Right/tc.w, screen.Top/tc.h)
		want = math.Min(want, 2*screen.Top/minVisibleTiles)
		if !approx(got, want, want*1e-12) {
			t.Fatalf("halfW=%v halfH=%v: scale %v, want %v", tc.w, tc.h, got, want)
		}
	}
}

// The padding fixed-point iteration converges: the scale delta between
// consecutive iterations shrinks monotonically, across box sizes
// spanning 4 orders of magnitude.
func TestPaddingIterationConverges(t *testing.T) {
	e := newTestEnv()
	screen := e.sess.Cam.ScreenBox()
	for _, half := range []float64{1, 10, 100, 1000, 10000} {
		padX, padY := dec(0), dec(0)
		prevScale := 0.0
		prevDelta := math.Inf(1)
		for i := 0; i < paddingIterations; i++ {
			scale := calcScaleToMatchSides(e.sess, dec(half).Add(padX), dec(half).Add(padY))
			sf := scale.Float64()
			if i > 0 {
				delta := math.Abs(sf - prevScale)
				if delta > prevDelta+prevDelta*1e-9 {
					t.Fatalf("half=%v iter %d: delta grew %v -> %v", half, i, prevDelta, delta)
				}
				prevDelta = delta
			}
			prevScale = sf
			frac := paddingFrac
			if sf < e.sess.Cam.ScaleOneVirtualPixel() {
				frac = paddingFracZoomedOut
			}
			padX = bigdec.New(frac * 2 * screen.Right).DivFloat(scale)
			padY = bigdec.New(frac * 2 * screen.Top).DivFloat(scale)
		}
		if prevDelta > prevScale*1e-3 {
			t.Fatalf("half=%v: not converged, final delta %v at scale %v", half, prevDelta, prevScale)
		}
	}
}

// Area over [[0,0],[10,10]]: the returned coords sit at the midpoint of
// the two coordinates (5 on each axis), the square expansion being
// symmetric about the draw centers, and the expanded corners stay inside
// the maximized screen box.
func TestCalculateFromCoordsListFrames(t *testing.T) {
	e := newTestEnv()
	a := CalculateFromCoordsList(e.sess, []Coord{C(0, 0), C(10, 10)})

	if !approx(a.Coords.X.Float64(), 5, 1e-9) || !approx(a.Coords.Y.Float64(), 5, 1e-9) {
		t.Fatalf("coords = %v,%v, want 5,5", a.Coords.X, a.Coords.Y)
	}
	for _, c := range []Coord{C(-squareCenterX, -squareCenterY), C(11-squareCenterX, 11-squareCenterY)} {
		if !a.Box.Contains(c) {
			t.Fatalf("corner %v,%v outside framed box", c.X, c.Y)
		}
	}
	// Padding means the content does not touch the screen edge.
	halfW := bigdec.New(e.sess.Cam.ScreenBox().Right).DivFloat(a.Scale).Float64()
	if 5+halfW <= 11-squareCenterX {
		t.Fatalf("screen does not even cover the content")
	}
	contentHalf := 5.5
	if halfW <= contentHalf {
		t.Fatalf("no padding: screen half %v vs content half %v", halfW, contentHalf)
	}
}

// The returned box is re-maximized to the exact screen extents so it
// answers on-screen visibility, not content extent.
func TestAreaBoxMaximized(t *testing.T) {
	e := newTestEnv()
	a := CalculateFromCoordsList(e.sess, []Coord{C(0, 0), C(4, 2)})
	screen := e.sess.Cam.ScreenBox()
	wantHalfW := bigdec.New(screen.Right).DivFloat(a.Scale)
	gotHalfW := a.Box.Right.Sub(a.Box.Left).MulFloat(dec(0.5))
	if !approx(gotHalfW.Float64(), wantHalfW.Float64(), wantHalfW.Float64()*1e-9) {
		t.Fatalf("box half width %v, want screen %v", gotHalfW, wantHalfW)
	}
}

// A single coordinate frames to the minimum-tiles cap instead of zooming
// onto a point.
func TestSingleCoordHitsMinTilesCap(t *testing.T) {
	e := newTestEnv()
	a := CalculateFromCoordsList(e.sess, []Coord{C(0, 0)})
	screen := e.sess.Cam.ScreenBox()
	capScale := 2 * screen.Top / minVisibleTiles
	if !approx(a.Scale.Float64(), capScale, capScale*1e-12) {
		t.Fatalf("scale = %v, want cap %v", a.Scale.Float64(), capScale)
	}
}

func TestBoundingBoxContainsAndExtend(t *testing.T) {
	box := BoundingBox{Left: dec(0), Right: dec(10), Bottom: dec(0), Top: dec(10)}
	if !box.Contains(C(5, 5)) || box.Contains(C(11, 5)) {
		t.Fatalf("Contains wrong")
	}
	ext := box.ExtendTo(C(-3, 12))
	if ext.Left.Cmp(dec(-3)) != 0 || ext.Top.Cmp(dec(12)) != 0 {
		t.Fatalf("ExtendTo wrong: %v %v", ext.Left, ext.Top)
	}
	if ext.Right.Cmp(dec(10)) != 0 {
		t.Fatalf("ExtendTo should not shrink")
	}
}
