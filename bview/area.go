package bview

import "chessview/bigdec"

// BoundingBox is an axis-aligned rectangle in board coordinates, held in
// arbitrary precision because its corners can be astronomically far apart.
type BoundingBox struct {
	Left, Right, Bottom, Top bigdec.Dec
}

// Contains reports whether c lies inside b (inclusive).
func (b BoundingBox) Contains(c Coord) bool {
	return c.X.Cmp(b.Left) >= 0 && c.X.Cmp(b.Right) <= 0 &&
		c.Y.Cmp(b.Bottom) >= 0 && c.Y.Cmp(b.Top) <= 0
}

// ExtendTo grows b just enough to include c.
func (b BoundingBox) ExtendTo(c Coord) BoundingBox {
	return BoundingBox{
		Left:   bigdec.Min(b.Left, c.X),
		Right:  bigdec.Max(b.Right, c.X),
		Bottom: bigdec.Min(b.Bottom, c.Y),
		Top:    bigdec.Max(b.Top, c.Y),
	}
}

// Center returns the midpoint of b.
func (b BoundingBox) Center() Coord {
	half := bigdec.New(0.5)
	return Coord{
		X: b.Left.Add(b.Right).MulFloat(half),
		Y: b.Bottom.Add(b.Top).MulFloat(half),
	}
}

// Area is a computed camera configuration that frames a target region
// with padding: where to put the camera, at what scale, and the
// world-visible box that results. Transient; recomputed on demand.
type Area struct {
	Coords Coord
	Scale  bigdec.Dec
	Box    BoundingBox
}

// CalculateFromCoordsList computes the Area framing all of coords with
// padding. Panics on an empty list: that is a caller bug, and degrading
// would produce silently wrong framing.
func CalculateFromCoordsList(s *Session, coords []Coord) Area {
	if len(coords) == 0 {
		panic("bview: CalculateFromCoordsList requires at least one coordinate")
	}
	box := BoundingBox{
		Left:   coords[0].X.Copy(),
		Right:  coords[0].X.Copy(),
		Bottom: coords[0].Y.Copy(),
		Top:    coords[0].Y.Copy(),
	}
	for _, c := range coords[1:] {
		box = box.ExtendTo(c)
	}
	// Expand to whole-square boundaries around the draw centers: the
	// square at coordinate c spans [c-squareCenterX, c+1-squareCenterX)
	// on X, and the Y analogue. Keeps the framed center at the midpoint
	// of the squares as drawn.
	box.Left = box.Left.Sub(bigdec.New(squareCenterX))
	box.Right = box.Right.Add(bigdec.New(1 - squareCenterX))
	box.Bottom = box.Bottom.Sub(bigdec.New(squareCenterY))
	box.Top = box.Top.Add(bigdec.New(1 - squareCenterY))
	return calculateFromBox(s, box)
}

// calculateFromBox pads the box, derives camera coords and scale, then
// re-maximizes the box to exactly fill the screen at that configuration
// so later containment tests reflect true on-screen visibility.
func calculateFromBox(s *Session, box BoundingBox) Area {
	padded := applyPaddingToBox(s, box)
	center := padded.Center()
	halfW := padded.Right.Sub(padded.Left).MulFloat(bigdec.New(0.5))
	halfH := padded.Top.Sub(padded.Bottom).MulFloat(bigdec.New(0.5))
	scale := calcScaleToMatchSides(s, halfW, halfH)
	return Area{
		Coords: center,
		Scale:  scale,
		Box:    maximizeBoxToScreen(s, center, scale),
	}
}

// applyPaddingToBox resolves the circular dependency between padding and
// scale: padding is a fraction of the screen dimension, converting it to
// board units needs the scale, and the scale depends on the padded box.
// Fixed-point iteration from zero padding converges well inside the
// iteration cap for any sane box.
func applyPaddingToBox(s *Session, box BoundingBox) BoundingBox {
	halfW := box.Right.Sub(box.Left).MulFloat(bigdec.New(0.5))
	halfH := box.Top.Sub(box.Bottom).MulFloat(bigdec.New(0.5))
	screen := s.Cam.ScreenBox()

	padX := bigdec.New(0)
	padY := bigdec.New(0)
	for i := 0; i < paddingIterations; i++ {
		scale := calcScaleToMatchSides(s, halfW.Add(padX), halfH.Add(padY))
		frac := paddingFrac
		if scale.Float64() < s.Cam.ScaleOneVirtualPixel() {
			// Mini-icon regime: tighter content, wider margins.
			frac = paddingFracZoomedOut
		}
		padX = bigdec.New(frac * 2 * screen.Right).DivFloat(scale)
		padY = bigdec.New(frac * 2 * screen.Top).DivFloat(scale)
	}
	return BoundingBox{
		Left:   box.Left.Sub(padX),
		Right:  box.Right.Add(padX),
		Bottom: box.Bottom.Sub(padY),
		Top:    box.Top.Add(padY),
	}
}

// calcScaleToMatchSides computes the scale that fits a half-width and
// half-height (board units) on screen: the per-axis solutions to
// screenHalfExtent = boardHalfExtent * scale, taking the minimum so both
// axes fit, capped so at least minVisibleTiles tiles stay visible
// vertically.
func calcScaleToMatchSides(s *Session, halfW, halfH bigdec.Dec) bigdec.Dec {
	screen := s.Cam.ScreenBox()
	sx := bigdec.New(screen.Right).DivFloat(halfW)
	sy := bigdec.New(screen.Top).DivFloat(halfH)
	scale := bigdec.Min(sx, sy)
	capScale := bigdec.New(2 * screen.Top / minVisibleTiles)
	if scale.Cmp(capScale) > 0 {
		scale = capScale
	}
	return scale
}

// maximizeBoxToScreen expands a framed box back out to the full screen
// extents at the given position and scale.
func maximizeBoxToScreen(s *Session, center Coord, scale bigdec.Dec) BoundingBox {
	screen := s.Cam.ScreenBox()
	hw := bigdec.New(screen.Right).DivFloat(scale)
	hh := bigdec.New(screen.Top).DivFloat(scale)
	return BoundingBox{
		Left:   center.X.Sub(hw),
		Right:  center.X.Add(hw),
		Bottom: center.Y.Sub(hh),
		Top:    center.Y.Add(hh),
	}
}

// CurrentViewBox is the screen's board-coordinate extents at the current
// position and scale.
func CurrentViewBox(s *Session) BoundingBox {
	return maximizeBoxToScreen(s, s.Board.Position(), s.Board.Scale())
}

// InitTransitionFromArea plans the motion to reach target. Zooming out
// past a view that does not already contain the current position first
// passes through an intermediate area extended to include it, so the
// motion reads as one continuous zoom rather than a jump; zoom-in gets
// the mirrored treatment with the current view extended to include the
// destination. At most two hops result.
func InitTransitionFromArea(s *Session, target Area) {
	cur := s.Board.Scale()
	zoomOut := target.Scale.Cmp(cur) < 0

	if zoomOut {
		if !target.Box.Contains(s.Board.Position()) {
			first := calculateFromBox(s, target.Box.ExtendTo(s.Board.Position()))
			s.startTwoHop(first, target)
			return
		}
	} else {
		view := CurrentViewBox(s)
		if !view.Contains(target.Coords) {
			first := calculateFromBox(s, view.ExtendTo(target.Coords))
			s.startTwoHop(first, target)
			return
		}
	}
	s.StartZoom(target.Coords, target.Scale)
}
