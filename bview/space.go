package bview

import "chessview/bigdec"

// Coord is a board coordinate: which square, in arbitrary precision.
// The board is unbounded, so these can be astronomically far from origin.
type Coord struct {
	X, Y bigdec.Dec
}

// C builds a Coord from float64 components at canonical precision.
// Convenience for squares within float range; distant squares should be
// built from bigdec directly.
func C(x, y float64) Coord {
	return Coord{bigdec.New(x), bigdec.New(y)}
}

// Copy returns an independent copy of c.
func (c Coord) Copy() Coord {
	return Coord{c.X.Copy(), c.Y.Copy()}
}

// Vec2 is a small-magnitude vector in world or pixel space, safe for
// native floats.
type Vec2 struct {
	X, Y float64
}

// Box is an axis-aligned rectangle in world or pixel space.
type Box struct {
	Left, Right, Bottom, Top float64
}

// BoardToWorld converts a board coordinate to world space:
// (coord - boardPosition) * scale, computed in arbitrary precision and
// only then collapsed to float64. World space is camera-relative, so the
// result is small whenever the coordinate is anywhere near the viewport.
func BoardToWorld(b *BoardPosition, c Coord) Vec2 {
	return Vec2{
		X: c.X.Sub(b.pos.X).MulFloat(b.scale).Float64(),
		Y: c.Y.Sub(b.pos.Y).MulFloat(b.scale).Float64(),
	}
}

// BoardToWorldFloat is the float64 fast path for BoardToWorld. Only valid
// when the caller knows both the offset from the board position and the
// scale are comfortably within float64 range; used in per-piece render
// loops that have already culled to the visible region. Misuse produces
// wrong geometry, not a crash.
func BoardToWorldFloat(b *BoardPosition, cx, cy float64) Vec2 {
	px := b.pos.X.Float64()
	py := b.pos.Y.Float64()
	s := b.scale.Float64()
	return Vec2{X: (cx - px) * s, Y: (cy - py) * s}
}

// WorldToBoard inverts BoardToWorld: boardPosition + world/scale.
func WorldToBoard(b *BoardPosition, w Vec2) Coord {
	return Coord{
		X: b.pos.X.Add(bigdec.New(w.X).DivFloat(b.scale)),
		Y: b.pos.Y.Add(bigdec.New(w.Y).DivFloat(b.scale)),
	}
}

// WorldToPixel maps world space to physical pixel space. Pixel origin is
// the top-left corner with Y growing downward.
func WorldToPixel(cam *Camera, w Vec2) Vec2 {
	ppw := cam.PixelsPerWorld()
	return Vec2{
		X: cam.pixelW/2 + w.X*ppw,
		Y: cam.pixelH/2 - w.Y*ppw,
	}
}

// PixelToWorld maps physical pixel space back to world space.
func PixelToWorld(cam *Camera, p Vec2) Vec2 {
	ppw := cam.PixelsPerWorld()
	return Vec2{
		X: (p.X - cam.pixelW/2) / ppw,
		Y: (cam.pixelH/2 - p.Y) / ppw,
	}
}

// VirtualToPixel scales virtual (CSS-like) pixel coordinates by the
// device pixel ratio.
func VirtualToPixel(cam *Camera, p Vec2) Vec2 {
	return Vec2{p.X * cam.dpr, p.Y * cam.dpr}
}

// SquareBoxBoard returns the bounding box of one square around its draw
// center, in board units relative to the square's coordinate. This is the
// untransformed box: renderers that upload a scale uniform use it as-is.
func SquareBoxBoard() Box {
	return Box{
		Left:   -squareCenterX,
		Right:  1 - squareCenterX,
		Bottom: -squareCenterY,
		Top:    1 - squareCenterY,
	}
}

// SquareBoxWorld returns the square's bounding box in world space, ready
// for the screen: corner from the precise transform, size premultiplied
// by scale. Using this avoids a redundant per-square matrix transform at
// render time.
func SquareBoxWorld(b *BoardPosition, c Coord) Box {
	w := BoardToWorld(b, c)
	s := b.scale.Float64()
	return Box{
		Left:   w.X - squareCenterX*s,
		Right:  w.X + (1-squareCenterX)*s,
		Bottom: w.Y - squareCenterY*s,
		Top:    w.Y + (1-squareCenterY)*s,
	}
}
