package bview

import (
	"math"

	"chessview/bigdec"
)

// BoardPosition owns the authoritative board position, scale, and their
// velocities. The camera never moves in response to panning; this is the
// coordinate system that slides beneath it.
//
// Setters are fail-soft for bad numeric input (logged, state untouched)
// because they run inside a live frame loop, but precision-contract
// violations panic: a value arriving without canonical precision means a
// caller dropped or gained precision somewhere, and continuing would bake
// the corruption into every later frame.
type BoardPosition struct {
	pos      Coord
	scale    bigdec.Dec
	panVel   Vec2
	scaleVel float64

	markDirty func()
	errf      func(format string, v ...any)
}

func newBoardPosition(markDirty func(), errf func(string, ...any)) *BoardPosition {
	return &BoardPosition{
		pos:       C(0, 0),
		scale:     bigdec.New(1),
		markDirty: markDirty,
		errf:      errf,
	}
}

// Reset returns the board to origin at scale 1 with no momentum. Called
// when a new game session loads.
func (b *BoardPosition) Reset() {
	b.pos = C(0, 0)
	b.scale = bigdec.New(1)
	b.panVel = Vec2{}
	b.scaleVel = 0
	b.markDirty()
}

// Position returns a copy of the board coordinate mapped to screen center.
func (b *BoardPosition) Position() Coord { return b.pos.Copy() }

// SetPosition stores a copy of c. Non-finite input is rejected and logged;
// a non-canonical precision tag panics.
func (b *BoardPosition) SetPosition(c Coord) {
	if !c.X.HasCanonicalPrec() || !c.Y.HasCanonicalPrec() {
		panic("bview: SetPosition requires canonical precision")
	}
	if c.X.IsInf() || c.Y.IsInf() {
		b.errf("SetPosition: non-finite coordinate rejected")
		return
	}
	b.pos = c.Copy()
	b.markDirty()
}

// Scale returns a copy of the current zoom factor.
func (b *BoardPosition) Scale() bigdec.Dec { return b.scale.Copy() }

// SetScale stores s, clamped to maxScale. Clamping also zeroes scale
// velocity so momentum cannot pin the scale against the cap. Non-positive
// or non-finite input is rejected and logged.
func (b *BoardPosition) SetScale(s bigdec.Dec) {
	if !s.HasCanonicalPrec() {
		panic("bview: SetScale requires canonical precision")
	}
	if s.Sign() <= 0 || s.IsInf() {
		b.errf("SetScale: non-positive or non-finite scale rejected")
		return
	}
	if s.Cmp(bigdec.New(maxScale)) > 0 {
		b.scale = bigdec.New(maxScale)
		b.scaleVel = 0
	} else {
		b.scale = s.Copy()
	}
	b.markDirty()
}

// PanVelocity returns the current pan momentum in screen-space world
// units per second. Uncapped so throws keep their energy.
func (b *BoardPosition) PanVelocity() Vec2 { return b.panVel }

func (b *BoardPosition) SetPanVelocity(v Vec2) {
	if math.IsNaN(v.X) || math.IsInf(v.X, 0) || math.IsNaN(v.Y) || math.IsInf(v.Y, 0) {
		b.errf("SetPanVelocity: non-finite velocity rejected")
		return
	}
	b.panVel = v
	b.markDirty()
}

// ScaleVelocity returns the current zoom momentum in ln-scale units per
// second.
func (b *BoardPosition) ScaleVelocity() float64 { return b.scaleVel }

func (b *BoardPosition) SetScaleVelocity(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		b.errf("SetScaleVelocity: non-finite velocity rejected")
		return
	}
	b.scaleVel = v
	b.markDirty()
}

// StopMomentum zeroes pan and scale velocity.
func (b *BoardPosition) StopMomentum() {
	b.panVel = Vec2{}
	b.scaleVel = 0
}

// HasMomentum reports whether any velocity is nonzero.
func (b *BoardPosition) HasMomentum() bool {
	return b.panVel.X != 0 || b.panVel.Y != 0 || b.scaleVel != 0
}

// Update integrates momentum over dt seconds. No-ops while paused, mid
// transition, or throttled for inactivity.
//
// Pan velocity is divided by the current scale so a throw covers the same
// number of screen pixels per second regardless of zoom. Scale velocity
// integrates multiplicatively; below scaleFloor a zoom-out is damped by
// scale/floor so the momentum dies off smoothly instead of stopping at a
// hard edge.
func (b *BoardPosition) Update(dt float64, paused, transitioning, throttled bool) {
	if paused || transitioning || throttled || dt <= 0 {
		return
	}
	changed := false

	if b.panVel.X != 0 || b.panVel.Y != 0 {
		b.pos.X = b.pos.X.Add(bigdec.New(b.panVel.X * dt).DivFloat(b.scale))
		b.pos.Y = b.pos.Y.Add(bigdec.New(b.panVel.Y * dt).DivFloat(b.scale))
		changed = true
	}

	if b.scaleVel != 0 {
		rate := b.scaleVel
		if rate < 0 {
			if damp := b.scale.Float64() / scaleFloor; damp < 1 {
				rate *= damp
			}
		}
		next := b.scale.MulFloat(bigdec.New(math.Exp(rate * dt)))
		if next.Cmp(bigdec.New(maxScale)) > 0 {
			next = bigdec.New(maxScale)
			b.scaleVel = 0
		}
		b.scale = next
		changed = true
	}

	if changed {
		b.markDirty()
	}
}

// TilesArePoints reports whether the board is zoomed out far enough that
// one tile covers less than one physical device pixel, at which point
// squares render as points/icons instead of geometry.
func (b *BoardPosition) TilesArePoints(cam *Camera) bool {
	return b.scale.Float64() < cam.ScaleOnePhysicalPixel()
}

// TilesSmallerThanVirtualPixel is the coarser zoomed-out threshold: one
// tile under one virtual pixel. Rendering styles switch here (outline vs
// fill highlights) and framing padding widens.
func (b *BoardPosition) TilesSmallerThanVirtualPixel(cam *Camera) bool {
	return b.scale.Float64() < cam.ScaleOneVirtualPixel()
}
