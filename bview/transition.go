package bview

import (
	"math"
	"time"

	"chessview/bigdec"
)

type transitionKind int

const (
	zoomTransition transitionKind = iota
	panTransition
)

// transition is one in-flight camera motion. Origin and destination are
// held exactly in board coordinates; the focus bookkeeping lives in
// approximate world-space doubles, which is safe because the planner
// never produces a zoom whose focus leaves the representable range.
type transition struct {
	kind transitionKind

	originCoords Coord
	destCoords   Coord
	originScale  bigdec.Dec
	destScale    bigdec.Dec

	// Zoom state: ln endpoints for log-linear scale interpolation, and
	// the tracked focus point with its world positions at t=0 and t=1.
	lnOrigin, lnDest float64
	focus            Coord
	focusStartW      Vec2
	focusEndW        Vec2

	// Pan state: unit direction of travel and total distance in world
	// units at the (constant) transition scale. distWorld may be +Inf for
	// astronomically long pans; only its comparison against the teleport
	// cap matters then.
	dir       Vec2
	distWorld float64
	teleport  bool

	start    time.Time
	duration time.Duration
}

type historyEntry struct {
	coords Coord
	scale  bigdec.Dec
}

// IsTeleporting reports whether a transition is currently driving the
// camera. Drag and momentum are locked out while it is.
func (s *Session) IsTeleporting() bool { return s.trans != nil }

// StartPan begins a constant-scale pan transition to dest.
func (s *Session) StartPan(dest Coord) {
	s.beginTransition(s.newPan(dest), true)
}

// StartZoom begins a zoom transition to dest at destScale.
func (s *Session) StartZoom(dest Coord, destScale bigdec.Dec) {
	s.beginTransition(s.newZoom(dest, destScale), true)
}

// startTwoHop runs first then chains into second; both hops share a
// single history entry since they are one logical motion.
func (s *Session) startTwoHop(first, second Area) {
	s.beginTransition(s.newZoom(first.Coords, first.Scale), true)
	q := s.newZoomFrom(first.Coords, first.Scale, second.Coords, second.Scale)
	s.queued = q
}

// beginTransition cancels any drag and momentum (a transition and a throw
// are mutually exclusive owners of board position), drops any queued hop
// of an interrupted two-hop motion, optionally records the undo point,
// and arms the new transition. startTwoHop re-arms its queued hop after
// this returns.
func (s *Session) beginTransition(t *transition, pushHistory bool) {
	s.queued = nil
	s.Drag.reset()
	s.Board.StopMomentum()
	if pushHistory {
		s.pushHistory(historyEntry{coords: s.Board.Position(), scale: s.Board.Scale()})
	}
	t.start = s.now()
	s.trans = t
	s.markDirty()
}

func (s *Session) pushHistory(e historyEntry) {
	s.history = append(s.history, e)
	if len(s.history) > historyCap {
		s.history = s.history[len(s.history)-historyCap:]
	}
}

// newPan builds a pan transition from the current position.
func (s *Session) newPan(dest Coord) *transition {
	origin := s.Board.Position()
	scale := s.Board.Scale()
	dx := dest.X.Sub(origin.X)
	dy := dest.Y.Sub(origin.Y)

	// Normalize by the dominant component first so the unit direction
	// survives deltas far outside float64 range.
	m := bigdec.Max(dx.Abs(), dy.Abs())
	var dir Vec2
	dist := 0.0
	if !m.IsZero() {
		nx := dx.DivFloat(m).Float64()
		ny := dy.DivFloat(m).Float64()
		l := math.Hypot(nx, ny)
		dir = Vec2{nx / l, ny / l}
		dist = m.MulFloat(scale).Float64() * l
	}

	return &transition{
		kind:         panTransition,
		originCoords: origin,
		destCoords:   dest.Copy(),
		originScale:  scale,
		destScale:    scale,
		dir:          dir,
		distWorld:    dist,
		teleport:     dist > s.maxPanWorld(),
		duration:     panDuration,
	}
}

// maxPanWorld is the longest pan actually traversed, in world units:
// a multiple of the screen height.
func (s *Session) maxPanWorld() float64 {
	box := s.Cam.ScreenBox()
	return maxPanScreens * 2 * box.Top
}

// newZoom builds a zoom transition from the current position.
func (s *Session) newZoom(dest Coord, destScale bigdec.Dec) *transition {
	return s.newZoomFrom(s.Board.Position(), s.Board.Scale(), dest, destScale)
}

// newZoomFrom builds a zoom transition with an explicit origin, used when
// chaining a queued hop whose origin is the first hop's destination.
//
// Scale interpolates log-linearly. Position tracks a focus point: zooming
// out keeps the origin (world [0,0] at start, since that is where the
// camera looks) from jumping; zooming in tracks the destination's world
// position at the origin scale. Each frame the board position is solved
// backward from the focus world offset over the current scale.
func (s *Session) newZoomFrom(origin Coord, originScale bigdec.Dec, dest Coord, destScale bigdec.Dec) *transition {
	t := &transition{
		kind:         zoomTransition,
		originCoords: origin.Copy(),
		destCoords:   dest.Copy(),
		originScale:  originScale.Copy(),
		destScale:    destScale.Copy(),
		lnOrigin:     originScale.LnFloat(),
		lnDest:       destScale.LnFloat(),
	}
	zoomOut := destScale.Cmp(originScale) < 0
	if zoomOut {
		t.focus = origin.Copy()
		t.focusStartW = Vec2{}
		t.focusEndW = Vec2{
			X: origin.X.Sub(dest.X).MulFloat(destScale).Float64(),
			Y: origin.Y.Sub(dest.Y).MulFloat(destScale).Float64(),
		}
	} else {
		t.focus = dest.Copy()
		t.focusStartW = Vec2{
			X: dest.X.Sub(origin.X).MulFloat(originScale).Float64(),
			Y: dest.Y.Sub(origin.Y).MulFloat(originScale).Float64(),
		}
		t.focusEndW = Vec2{}
	}

	d := zoomDurationBase + time.Duration(math.Abs(t.lnDest-t.lnOrigin)*float64(zoomDurationPerLn))
	if s.perspective {
		d = time.Duration(float64(d) * perspectiveDurMult)
	}
	t.duration = d
	return t
}

// updateTransition advances the active transition from its start
// timestamp. Progress is recomputed from the wall clock, so dropped
// frames jump forward instead of drifting.
func (s *Session) updateTransition(now time.Time) {
	t := s.trans
	if t == nil {
		return
	}
	elapsed := now.Sub(t.start)
	if elapsed >= t.duration {
		s.finishTransition()
		return
	}
	p := easeInOut(float64(elapsed) / float64(t.duration))

	switch t.kind {
	case zoomTransition:
		lnS := t.lnOrigin + (t.lnDest-t.lnOrigin)*p
		scale := bigdec.New(lnS).Exp()
		w := Vec2{
			X: t.focusStartW.X + (t.focusEndW.X-t.focusStartW.X)*p,
			Y: t.focusStartW.Y + (t.focusEndW.Y-t.focusStartW.Y)*p,
		}
		s.Board.pos = Coord{
			X: t.focus.X.Sub(bigdec.New(w.X).DivFloat(scale)),
			Y: t.focus.Y.Sub(bigdec.New(w.Y).DivFloat(scale)),
		}
		s.Board.scale = scale

	case panTransition:
		if !t.teleport {
			s.Board.pos = Coord{
				X: t.originCoords.X.Add(t.destCoords.X.Sub(t.originCoords.X).MulFloat(bigdec.New(p))),
				Y: t.originCoords.Y.Add(t.destCoords.Y.Sub(t.originCoords.Y).MulFloat(bigdec.New(p))),
			}
		} else {
			// First half: pan away from the origin by up to the cap.
			// Second half: approach the destination from the far side.
			// The middle of the journey is skipped, keeping duration
			// constant for any distance.
			maxBoard := bigdec.New(s.maxPanWorld()).DivFloat(t.originScale)
			if p <= 0.5 {
				off := maxBoard.MulFloat(bigdec.New(2 * p))
				s.Board.pos = Coord{
					X: t.originCoords.X.Add(off.MulFloat(bigdec.New(t.dir.X))),
					Y: t.originCoords.Y.Add(off.MulFloat(bigdec.New(t.dir.Y))),
				}
			} else {
				off := maxBoard.MulFloat(bigdec.New(2 * (1 - p)))
				s.Board.pos = Coord{
					X: t.destCoords.X.Sub(off.MulFloat(bigdec.New(t.dir.X))),
					Y: t.destCoords.Y.Sub(off.MulFloat(bigdec.New(t.dir.Y))),
				}
			}
		}
	}
	s.markDirty()
}

// finishTransition snaps exactly to the destination, eliminating any
// interpolation drift, then either ends or chains into the queued hop.
func (s *Session) finishTransition() {
	t := s.trans
	if t == nil {
		return
	}
	s.Board.pos = t.destCoords.Copy()
	s.Board.scale = t.destScale.Copy()
	s.trans = nil
	s.markDirty()

	if q := s.queued; q != nil {
		s.queued = nil
		s.beginTransition(q, false)
	}
}

// TerminateTransition clears transition state without snapping to the
// destination. Used when a session unloads mid-flight.
func (s *Session) TerminateTransition() {
	s.trans = nil
	s.queued = nil
}

// UndoTransition replays the most recent history entry as a fresh forward
// transition back to where the camera was. Not a reverse interpolation.
func (s *Session) UndoTransition() bool {
	if len(s.history) == 0 {
		return false
	}
	e := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	var t *transition
	if e.scale.Cmp(s.Board.Scale()) != 0 {
		t = s.newZoom(e.coords, e.scale)
	} else {
		t = s.newPan(e.coords)
	}
	s.beginTransition(t, false)
	return true
}

// TransitionRemaining reports how long the active transition has left;
// zero when idle. Display-only.
func (s *Session) TransitionRemaining() time.Duration {
	if s.trans == nil {
		return 0
	}
	left := s.trans.duration - s.now().Sub(s.trans.start)
	if left < 0 {
		left = 0
	}
	return left
}
