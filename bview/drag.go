package bview

import (
	"math"
	"time"

	"chessview/bigdec"
)

type dragState int

const (
	dragIdle dragState = iota
	draggedBy1
	draggedBy2
)

// dragSample is one entry of the rolling gesture history used to derive
// throw velocity on release.
type dragSample struct {
	t     time.Time
	pos   Coord
	scale bigdec.Dec
}

// BoardDrag converts pointer gestures into board position updates. One
// pointer pans by keeping the grabbed square under the cursor; two
// pointers pinch-zoom around their midpoint. Releasing converts the
// recent sample history into momentum.
type BoardDrag struct {
	s *Session

	state dragState
	id1   int
	id2   int
	grab1 Coord
	grab2 Coord

	pinchStartDist  float64
	pinchStartScale bigdec.Dec

	samples []dragSample
}

func newBoardDrag(s *Session) *BoardDrag {
	return &BoardDrag{s: s}
}

// Dragging reports whether a drag is in progress.
func (d *BoardDrag) Dragging() bool { return d.state != dragIdle }

// reset abandons any drag without deriving a throw. Called when a
// transition takes over the board.
func (d *BoardDrag) reset() {
	d.state = dragIdle
	d.samples = d.samples[:0]
}

// update runs the gesture state machine for one frame.
func (d *BoardDrag) update(now time.Time) {
	ptrs := d.s.pointers.Pointers()
	held := make(map[int]Pointer, len(ptrs))
	for _, p := range ptrs {
		if p.Held {
			held[p.ID] = p
		}
	}

	switch d.state {
	case dragIdle:
		for _, p := range ptrs {
			if p.Held && d.s.pointers.Claim(p.ID) {
				d.begin(p)
				break
			}
		}

	case draggedBy1:
		p1, ok := held[d.id1]
		if !ok {
			d.release(now)
			return
		}
		// A second claimable pointer upgrades to a pinch; third and
		// later pointers are ignored.
		for _, p := range ptrs {
			if p.ID != d.id1 && p.Held && d.s.pointers.Claim(p.ID) {
				d.beginPinch(p1, p)
				return
			}
		}
		d.solveSingle(p1, d.grab1)
		d.record(now)

	case draggedBy2:
		p1, ok1 := held[d.id1]
		p2, ok2 := held[d.id2]
		switch {
		case !ok1 && !ok2:
			d.release(now)
		case ok1 && !ok2:
			d.regrabSingle(p1)
		case !ok1 && ok2:
			d.id1 = d.id2
			d.regrabSingle(p2)
		default:
			d.solvePinch(p1, p2)
			d.record(now)
		}
	}
}

// begin starts a one-pointer drag: remember which board coordinate sits
// under the pointer and kill any momentum.
func (d *BoardDrag) begin(p Pointer) {
	d.id1 = p.ID
	d.grab1 = d.boardAt(p)
	d.s.Board.StopMomentum()
	d.state = draggedBy1
	d.samples = d.samples[:0]
}

// beginPinch records both grab points, the pixel separation, and the
// scale at pinch start. Zero separation is degenerate input from the
// caller and panics.
func (d *BoardDrag) beginPinch(p1, p2 Pointer) {
	dist := d.pixelDist(p1, p2)
	if dist == 0 {
		panic("bview: pinch start with zero finger separation")
	}
	d.id2 = p2.ID
	d.grab1 = d.boardAt(p1)
	d.grab2 = d.boardAt(p2)
	d.pinchStartDist = dist
	d.pinchStartScale = d.s.Board.Scale()
	d.state = draggedBy2
}

// regrabSingle continues with one finger after the other lifts,
// recomputing the grab point rather than ending the drag.
func (d *BoardDrag) regrabSingle(p Pointer) {
	d.grab1 = d.boardAt(p)
	d.state = draggedBy1
}

// solveSingle keeps the grabbed coordinate under the pointer:
// boardPos = grabbed - pointerWorld/scale.
func (d *BoardDrag) solveSingle(p Pointer, grab Coord) {
	w := d.worldAt(p)
	scale := d.s.Board.scale
	d.s.Board.SetPosition(Coord{
		X: grab.X.Sub(bigdec.New(w.X).DivFloat(scale)),
		Y: grab.Y.Sub(bigdec.New(w.Y).DivFloat(scale)),
	})
}

// solvePinch rescales by the finger-separation ratio and drags the
// midpoint of the two grabbed coordinates as a single point. Zoom-out
// below the floor damps the ratio in log space, the same shape the
// momentum integrator uses, so the soft limit feels identical either way.
func (d *BoardDrag) solvePinch(p1, p2 Pointer) {
	raw := d.pixelDist(p1, p2) / d.pinchStartDist
	if raw <= 0 {
		return
	}
	damp := 1.0
	if cur := d.s.Board.scale.Float64(); raw < 1 && cur < scaleFloor {
		damp = cur / scaleFloor
	}
	eff := math.Exp(math.Log(raw) * damp)
	scale := d.pinchStartScale.MulFloat(bigdec.New(eff))
	d.s.Board.SetScale(scale)
	scale = d.s.Board.scale // may have been clamped

	half := bigdec.New(0.5)
	grabMid := Coord{
		X: d.grab1.X.Add(d.grab2.X).MulFloat(half),
		Y: d.grab1.Y.Add(d.grab2.Y).MulFloat(half),
	}
	w1 := d.worldAt(p1)
	w2 := d.worldAt(p2)
	mid := Vec2{(w1.X + w2.X) / 2, (w1.Y + w2.Y) / 2}
	d.s.Board.SetPosition(Coord{
		X: grabMid.X.Sub(bigdec.New(mid.X).DivFloat(scale)),
		Y: grabMid.Y.Sub(bigdec.New(mid.Y).DivFloat(scale)),
	})
}

// record appends to the rolling history and trims it to the throw window.
func (d *BoardDrag) record(now time.Time) {
	d.samples = append(d.samples, dragSample{
		t:     now,
		pos:   d.s.Board.Position(),
		scale: d.s.Board.Scale(),
	})
	cutoff := now.Add(-throwWindow)
	i := 0
	for i < len(d.samples) && d.samples[i].t.Before(cutoff) {
		i++
	}
	d.samples = d.samples[i:]
}

// release ends the drag and converts the sample history into momentum: a
// finite difference over the oldest and newest retained samples, scaled
// to screen space so the throw feels the same at any zoom.
func (d *BoardDrag) release(now time.Time) {
	d.state = dragIdle
	if len(d.samples) < 2 {
		d.samples = d.samples[:0]
		return
	}
	oldest := d.samples[0]
	newest := d.samples[len(d.samples)-1]
	dt := newest.t.Sub(oldest.t).Seconds()
	d.samples = d.samples[:0]
	if dt <= 0 {
		return
	}

	vx := newest.pos.X.Sub(oldest.pos.X).MulFloat(newest.scale).Float64() / dt
	vy := newest.pos.Y.Sub(oldest.pos.Y).MulFloat(newest.scale).Float64() / dt
	d.s.Board.SetPanVelocity(Vec2{vx, vy})

	zoomVel := (newest.scale.LnFloat() - oldest.scale.LnFloat()) / dt
	d.s.Board.SetScaleVelocity(zoomVel)
}

// boardAt returns the board coordinate under a pointer.
func (d *BoardDrag) boardAt(p Pointer) Coord {
	return WorldToBoard(d.s.Board, d.worldAt(p))
}

// worldAt returns the world-space position under a pointer.
func (d *BoardDrag) worldAt(p Pointer) Vec2 {
	return PixelToWorld(d.s.Cam, VirtualToPixel(d.s.Cam, p.Pos))
}

// pixelDist is the physical-pixel distance between two pointers.
func (d *BoardDrag) pixelDist(p1, p2 Pointer) float64 {
	a := VirtualToPixel(d.s.Cam, p1.Pos)
	b := VirtualToPixel(d.s.Cam, p2.Pos)
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
