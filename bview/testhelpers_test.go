package bview

import (
	"time"

	"chessview/bigdec"
)

// fakeClock drives sessions deterministically in tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// stubPointers scripts the input layer.
type stubPointers struct {
	ptrs    []Pointer
	claimed map[int]bool
}

func (s *stubPointers) Pointers() []Pointer { return s.ptrs }

func (s *stubPointers) Claim(id int) bool {
	if s.claimed == nil {
		s.claimed = make(map[int]bool)
	}
	s.claimed[id] = true
	return true
}

type testEnv struct {
	sess   *Session
	clock  *fakeClock
	ptrs   *stubPointers
	errs   []string
	sounds []bool
}

func newTestEnv() *testEnv {
	e := &testEnv{clock: newFakeClock(), ptrs: &stubPointers{}}
	e.sess = NewSession(Options{
		Pointers: e.ptrs,
		Errorf: func(format string, v ...any) {
			e.errs = append(e.errs, format)
		},
		PlaySound: func(capture bool) {
			e.sounds = append(e.sounds, capture)
		},
		Now: e.clock.now,
	})
	e.sess.Cam.Init(0.5, 800, 600, 2)
	return e
}

func dec(v float64) bigdec.Dec { return bigdec.New(v) }

func approx(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
