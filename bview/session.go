package bview

import "time"

// PieceType identifies a piece kind for animation and visual lookup.
// The core never interprets it; game logic owns the vocabulary.
type PieceType string

// Pointer is one active pointer (mouse cursor or touch) for a frame, in
// virtual pixel coordinates.
type Pointer struct {
	ID   int
	Pos  Vec2
	Held bool
}

// PointerSource is the capability interface onto the input layer. Claim
// grants a pointer to exactly one consumer per frame so the board drag
// and other gestures never double-handle an event.
type PointerSource interface {
	Pointers() []Pointer
	Claim(id int) bool
}

// PauseQuery reports whether a modal/pause layer is blocking updates.
type PauseQuery interface {
	Paused() bool
}

// Options wires a Session to its collaborators. Nil fields get no-op
// defaults so tests can construct sessions piecemeal.
type Options struct {
	Pause     PauseQuery
	Pointers  PointerSource
	MarkDirty func()
	Errorf    func(format string, v ...any)

	// PlaySound is invoked when an animation's sound deadline passes;
	// capture selects which of the two effects.
	PlaySound func(capture bool)

	// HasVisual reports whether a piece type has a drawable
	// representation. Animations involving any type without one degrade
	// to sound-only.
	HasVisual func(PieceType) bool

	// Now supplies the clock; defaults to time.Now. Tests inject a fake.
	Now func() time.Time
}

type noPause struct{}

func (noPause) Paused() bool { return false }

type noPointers struct{}

func (noPointers) Pointers() []Pointer { return nil }
func (noPointers) Claim(int) bool      { return false }

// Session owns the board position, camera, drag state, transition state
// and animation set for one game session. Everything is single-threaded
// and frame-driven: Update mutates, renderers read afterwards within the
// same frame.
type Session struct {
	Board *BoardPosition
	Cam   *Camera
	Drag  *BoardDrag

	pause     PauseQuery
	pointers  PointerSource
	markDirty func()
	errf      func(string, ...any)
	playSound func(bool)
	hasVisual func(PieceType) bool
	now       func() time.Time

	trans   *transition
	queued  *transition
	history []historyEntry

	anims []*Animation

	throttled   bool
	perspective bool
	lastTick    time.Time
}

func NewSession(o Options) *Session {
	if o.Pause == nil {
		o.Pause = noPause{}
	}
	if o.Pointers == nil {
		o.Pointers = noPointers{}
	}
	if o.MarkDirty == nil {
		o.MarkDirty = func() {}
	}
	if o.Errorf == nil {
		o.Errorf = func(string, ...any) {}
	}
	if o.PlaySound == nil {
		o.PlaySound = func(bool) {}
	}
	if o.HasVisual == nil {
		o.HasVisual = func(PieceType) bool { return true }
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	s := &Session{
		Cam:       NewCamera(),
		pause:     o.Pause,
		pointers:  o.Pointers,
		markDirty: o.MarkDirty,
		errf:      o.Errorf,
		playSound: o.PlaySound,
		hasVisual: o.HasVisual,
		now:       o.Now,
	}
	s.Board = newBoardPosition(o.MarkDirty, o.Errorf)
	s.Drag = newBoardDrag(s)
	return s
}

// Update advances one frame. Order is fixed: input (drag) resolves first,
// then transition interpolation, then momentum physics, then animation
// deadlines. Transforms and drawing happen after this returns.
func (s *Session) Update() {
	now := s.now()
	var dt float64
	if !s.lastTick.IsZero() {
		dt = now.Sub(s.lastTick).Seconds()
		// A long stall (window hidden, debugger) should not integrate as
		// one giant step.
		if dt > 0.25 {
			dt = 0.25
		}
	}
	s.lastTick = now

	paused := s.pause.Paused()
	if !paused && !s.IsTeleporting() {
		s.Drag.update(now)
	}
	s.updateTransition(now)
	s.Board.Update(dt, paused, s.IsTeleporting(), s.throttled)
	s.updateAnimations(now)
}

// SetThrottled marks the loop as throttled for inactivity; momentum
// integration pauses until it clears.
func (s *Session) SetThrottled(on bool) { s.throttled = on }

// SetPerspective records perspective mode, which stretches zoom
// transition durations and tilts the view matrix.
func (s *Session) SetPerspective(on bool) {
	s.perspective = on
	if on {
		s.Cam.SetPitch(0.4)
	} else {
		s.Cam.SetPitch(0)
	}
}

// Perspective reports perspective mode.
func (s *Session) Perspective() bool { return s.perspective }

// Reset clears the session for a fresh game: board home, no transition,
// no history, animations dropped with their pending sounds flushed.
func (s *Session) Reset() {
	s.TerminateTransition()
	s.history = nil
	s.ClearAnimations(true)
	s.Drag.reset()
	s.Board.Reset()
}

// ScaleFloat is a render-loop convenience: the current scale collapsed to
// float64. Only meaningful when the caller has checked the zoom regime.
func (s *Session) ScaleFloat() float64 { return s.Board.scale.Float64() }
