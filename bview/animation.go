package bview

import (
	"math"
	"time"

	"chessview/bigdec"
)

// Placement is a piece standing on a square, used by show keyframes to
// reveal captured pieces along an animation path.
type Placement struct {
	Type   PieceType
	Coords Coord
}

// AnimationSpec describes one piece animation request.
//
// Show and Hide map *original* waypoint indices to visibility changes:
// pieces revealed (captures appearing on rewind) or masked (the moving
// piece's origin square, captured victims) once progress passes that
// waypoint. KeepOthers leaves existing animations running; the default
// preempts them, flushing their pending sounds immediately.
type AnimationSpec struct {
	Type       PieceType
	Waypoints  []Coord
	Show       map[int][]Placement
	Hide       map[int][]Coord
	Capture    bool
	Instant    bool
	KeepOthers bool
}

// Animation is one in-flight piece movement, decoupling visual position
// from logical board state. Multiple animations coexist (castling moves
// two pieces). Sound and removal run on explicit deadlines checked during
// Update, not host timers, so the whole thing is deterministic under a
// fake clock.
type Animation struct {
	Type PieceType

	waypoints []Coord
	path      []Coord
	segDir    []Vec2
	segDist   []float64
	totalDist float64
	resFactor int

	show map[int][]Placement
	hide map[int][]Coord

	capture bool
	instant bool

	start    time.Time
	duration time.Duration
	soundAt  time.Time
	removeAt time.Time

	soundPlayed bool
}

// AnimatePiece starts an animation. Fewer than two waypoints is a caller
// bug and panics. If any involved piece type has no visual, the animation
// degrades to instant: sound only, no motion.
func (s *Session) AnimatePiece(spec AnimationSpec) *Animation {
	if len(spec.Waypoints) < 2 {
		panic("bview: AnimatePiece requires at least 2 waypoints")
	}
	if !spec.KeepOthers {
		s.ClearAnimations(true)
	}

	instant := spec.Instant
	if !s.hasVisual(spec.Type) {
		instant = true
	}
	for _, pls := range spec.Show {
		for _, pl := range pls {
			if !s.hasVisual(pl.Type) {
				instant = true
			}
		}
	}

	a := &Animation{
		Type:      spec.Type,
		waypoints: copyCoords(spec.Waypoints),
		show:      spec.Show,
		hide:      spec.Hide,
		capture:   spec.Capture,
		instant:   instant,
		resFactor: 1,
	}
	a.buildPath()

	now := s.now()
	a.start = now
	if a.instant {
		a.duration = 0
		a.soundAt = now
		a.removeAt = now
	} else {
		capped := math.Min(a.totalDist, animTeleportCap)
		per := animDurationPerUnit
		if len(a.waypoints) > 2 {
			// Curved moves animate slower per unit so the shape reads.
			per = animDurationPerUnitC
		}
		a.duration = animDurationBase + time.Duration(capped*float64(per))
		a.removeAt = now.Add(a.duration)
		a.soundAt = a.removeAt.Add(-soundLead)
		if a.soundAt.Before(now) {
			a.soundAt = now
		}
	}

	s.anims = append(s.anims, a)
	s.markDirty()
	return a
}

func copyCoords(cs []Coord) []Coord {
	out := make([]Coord, len(cs))
	for i, c := range cs {
		out[i] = c.Copy()
	}
	return out
}

// buildPath expands the waypoints into the render path. Paths with 3+
// waypoints are spline-resampled in a float64 frame local to the first
// waypoint; endpoints snap back to the exact coordinates. Per-segment
// unit directions and distances are precomputed; a distance can be +Inf
// for moves past float64 range, which only ever compares against the
// teleport cap.
func (a *Animation) buildPath() {
	if len(a.waypoints) >= 3 {
		base := a.waypoints[0]
		local := make([]Vec2, len(a.waypoints))
		for i, wp := range a.waypoints {
			local[i] = Vec2{
				X: wp.X.Sub(base.X).Float64(),
				Y: wp.Y.Sub(base.Y).Float64(),
			}
		}
		smooth := expandSpline(local)
		a.path = make([]Coord, len(smooth))
		for i, v := range smooth {
			a.path[i] = Coord{
				X: base.X.Add(bigdec.New(v.X)),
				Y: base.Y.Add(bigdec.New(v.Y)),
			}
		}
		a.path[0] = a.waypoints[0].Copy()
		a.path[len(a.path)-1] = a.waypoints[len(a.waypoints)-1].Copy()
		a.resFactor = splineResolution
	} else {
		a.path = copyCoords(a.waypoints)
	}

	a.segDir = make([]Vec2, len(a.path)-1)
	a.segDist = make([]float64, len(a.path)-1)
	a.totalDist = 0
	for i := 0; i < len(a.path)-1; i++ {
		dx := a.path[i+1].X.Sub(a.path[i].X)
		dy := a.path[i+1].Y.Sub(a.path[i].Y)
		m := bigdec.Max(dx.Abs(), dy.Abs())
		if m.IsZero() {
			a.segDir[i] = Vec2{}
			a.segDist[i] = 0
			continue
		}
		nx := dx.DivFloat(m).Float64()
		ny := dy.DivFloat(m).Float64()
		l := math.Hypot(nx, ny)
		a.segDir[i] = Vec2{nx / l, ny / l}
		a.segDist[i] = m.Float64() * l
		a.totalDist += a.segDist[i]
	}
}

// progress returns eased progress in [0,1], or 1 when expired.
func (a *Animation) progress(now time.Time) float64 {
	if a.instant || a.duration <= 0 {
		return 1
	}
	lt := float64(now.Sub(a.start)) / float64(a.duration)
	return easeInOut(lt)
}

// locate maps eased progress to a segment, an offset in board units, and
// which end the offset is measured from. getCurrentSegment semantics:
// within the teleport cap the eased progress covers the whole distance;
// past it, the first half of eased time walks half a cap out of the start
// and the second half walks the last half cap into the destination,
// skipping the middle entirely. Offsets stay small real numbers even when
// a segment's length is +Inf, which keeps the interpolation exact at
// both ends of unrepresentable moves.
func (a *Animation) locate(p float64) (seg int, off float64, fromEnd bool) {
	if p >= 1 {
		return len(a.segDist) - 1, 0, true
	}
	if p <= 0 {
		return 0, 0, false
	}
	if a.totalDist <= animTeleportCap {
		return a.walkForward(p * a.totalDist)
	}
	half := animTeleportCap / 2
	if p < 0.5 {
		return a.walkForward((p / 0.5) * half)
	}
	seg, off = a.walkBackward(((1 - p) / 0.5) * half)
	return seg, off, true
}

// walkForward spends d board units of path from the start.
func (a *Animation) walkForward(d float64) (int, float64, bool) {
	for i, sd := range a.segDist {
		if d <= sd || i == len(a.segDist)-1 {
			return i, math.Min(d, sd), false
		}
		d -= sd
	}
	return len(a.segDist) - 1, 0, false
}

// walkBackward spends d board units of path from the destination.
func (a *Animation) walkBackward(d float64) (int, float64) {
	for i := len(a.segDist) - 1; i >= 0; i-- {
		sd := a.segDist[i]
		if d <= sd || i == 0 {
			return i, math.Min(d, sd)
		}
		d -= sd
	}
	return 0, 0
}

// CurrentPosition returns the animated board position at now. The offset
// within a segment is applied along the precomputed unit direction from
// whichever endpoint it was measured against.
func (a *Animation) CurrentPosition(now time.Time) Coord {
	p := a.progress(now)
	if p >= 1 {
		return a.path[len(a.path)-1].Copy()
	}
	seg, off, fromEnd := a.locate(p)
	dir := a.segDir[seg]
	if fromEnd {
		return Coord{
			X: a.path[seg+1].X.Sub(bigdec.New(dir.X * off)),
			Y: a.path[seg+1].Y.Sub(bigdec.New(dir.Y * off)),
		}
	}
	return Coord{
		X: a.path[seg].X.Add(bigdec.New(dir.X * off)),
		Y: a.path[seg].Y.Add(bigdec.New(dir.Y * off)),
	}
}

// pathIndexAt is the fractional path index for keyframe comparisons.
func (a *Animation) pathIndexAt(p float64) float64 {
	seg, off, fromEnd := a.locate(p)
	sd := a.segDist[seg]
	var frac float64
	if sd > 0 && !math.IsInf(sd, 1) {
		frac = off / sd
	}
	if fromEnd {
		return float64(seg+1) - frac
	}
	return float64(seg) + frac
}

// Visibility returns the pieces to additionally show and the squares to
// mask at now, per the keyframes. Keyframe indices are defined against
// the original waypoint list and rescaled by the spline resolution.
func (a *Animation) Visibility(now time.Time) (show []Placement, hide []Coord) {
	f := a.pathIndexAt(a.progress(now))
	for k, pls := range a.show {
		if float64(k*a.resFactor) <= f {
			show = append(show, pls...)
		}
	}
	for k, cs := range a.hide {
		if float64(k*a.resFactor) <= f {
			hide = append(hide, cs...)
		}
	}
	return show, hide
}

// Capture reports which sound effect this animation schedules.
func (a *Animation) Capture() bool { return a.capture }

// Instant reports whether the animation degraded to sound-only.
func (a *Animation) Instant() bool { return a.instant }

// Animations returns the live animation set for rendering. Read-only by
// convention.
func (s *Session) Animations() []*Animation { return s.anims }

// updateAnimations fires due sound deadlines and removes expired
// animations. An animation removed with its sound still pending fires it
// on the way out.
func (s *Session) updateAnimations(now time.Time) {
	if len(s.anims) == 0 {
		return
	}
	kept := s.anims[:0]
	for _, a := range s.anims {
		if !a.soundPlayed && !now.Before(a.soundAt) {
			a.soundPlayed = true
			s.playSound(a.capture)
		}
		if now.Before(a.removeAt) {
			kept = append(kept, a)
		} else if !a.soundPlayed {
			a.soundPlayed = true
			s.playSound(a.capture)
		}
	}
	s.anims = kept
	// Pieces are in motion; every frame repaints.
	s.markDirty()
}

// ClearAnimations drops all animations at once (fast-forwarding through
// history). flushSounds plays any unplayed sound immediately instead of
// losing it.
func (s *Session) ClearAnimations(flushSounds bool) {
	for _, a := range s.anims {
		if flushSounds && !a.soundPlayed {
			a.soundPlayed = true
			s.playSound(a.capture)
		}
	}
	s.anims = nil
}
