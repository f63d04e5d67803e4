package bview

import (
	"math"
	"testing"

	"chessview/bigdec"
)

// Scale clamp is idempotent: any over-cap scale stores exactly maxScale
// and kills scale velocity.
func TestScaleClampZeroesVelocity(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetScaleVelocity(3)
	for _, s := range []float64{maxScale + 0.001, 100, 1e12} {
		b.SetScaleVelocity(3)
		b.SetScale(dec(s))
		if b.Scale().Cmp(dec(maxScale)) != 0 {
			t.Fatalf("SetScale(%v): scale = %v, want %v", s, b.Scale(), maxScale)
		}
		if b.ScaleVelocity() != 0 {
			t.Fatalf("SetScale(%v): scale velocity not zeroed", s)
		}
	}
}

func TestSetPositionRequiresCanonicalPrecision(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	before := b.Position()
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("non-canonical precision should panic")
			}
		}()
		b.SetPosition(Coord{dec(1).WithPrec(64), dec(2)})
	}()
	if b.Position().X.Cmp(before.X) != 0 {
		t.Fatalf("position changed despite rejected input")
	}
}

// A canonical value must be stored as an exact copy, and mutating the
// caller's value afterwards must not leak in.
func TestSetPositionStoresExactCopy(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	c := C(123456789.25, -42)
	b.SetPosition(c)
	got := b.Position()
	if got.X.Cmp(c.X) != 0 || got.Y.Cmp(c.Y) != 0 {
		t.Fatalf("stored position differs: %v,%v", got.X, got.Y)
	}
}

func TestSetPositionRejectsNonFinite(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetPosition(Coord{dec(math.Inf(1)), dec(0)})
	if b.Position().X.Cmp(dec(0)) != 0 {
		t.Fatalf("non-finite position should be rejected")
	}
	if len(e.errs) == 0 {
		t.Fatalf("rejection should be logged")
	}
}

func TestSetScaleRejectsNonPositive(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetScale(dec(0))
	b.SetScale(dec(-3))
	if b.Scale().Cmp(dec(1)) != 0 {
		t.Fatalf("scale should stay at 1, got %v", b.Scale())
	}
	if len(e.errs) != 2 {
		t.Fatalf("expected 2 logged rejections, got %d", len(e.errs))
	}
}

// BoardPosition at (0,0) scale 1 with pan velocity (10,0) integrated over
// half a second lands at (5,0).
func TestPanVelocityIntegration(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetPanVelocity(Vec2{10, 0})
	b.Update(0.5, false, false, false)
	if got := b.Position().X.Float64(); !approx(got, 5, 1e-12) {
		t.Fatalf("X = %v, want 5", got)
	}
	if got := b.Position().Y.Float64(); got != 0 {
		t.Fatalf("Y = %v, want 0", got)
	}
}

// Pan speed is scale-invariant in screen space: at scale 2 the same
// velocity moves half as far in board units.
func TestPanVelocityScaleInvariant(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetScale(dec(2))
	b.SetPanVelocity(Vec2{10, 0})
	b.Update(0.5, false, false, false)
	if got := b.Position().X.Float64(); !approx(got, 2.5, 1e-12) {
		t.Fatalf("X = %v, want 2.5", got)
	}
}

func TestUpdateSkipsWhenBlocked(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetPanVelocity(Vec2{10, 0})
	b.Update(0.5, true, false, false)
	b.Update(0.5, false, true, false)
	b.Update(0.5, false, false, true)
	if got := b.Position().X.Float64(); got != 0 {
		t.Fatalf("position moved while blocked: %v", got)
	}
}

// Zoom-out momentum below the scale floor decays softly: the damped
// integration loses less scale than the undamped rate would.
func TestScaleFloorDamping(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	start := scaleFloor / 2
	b.SetScale(bigdec.New(start))
	b.SetScaleVelocity(-1)
	b.Update(0.1, false, false, false)
	undamped := start * math.Exp(-1*0.1)
	got := b.Scale().Float64()
	if got <= undamped {
		t.Fatalf("damping absent: got %v, undamped would be %v", got, undamped)
	}
	if got >= start {
		t.Fatalf("scale should still shrink, got %v from %v", got, start)
	}
}

func TestStopMomentum(t *testing.T) {
	e := newTestEnv()
	b := e.sess.Board
	b.SetPanVelocity(Vec2{1, 2})
	b.SetScaleVelocity(3)
	if !b.HasMomentum() {
		t.Fatalf("expected momentum")
	}
	b.StopMomentum()
	if b.HasMomentum() {
		t.Fatalf("momentum not cleared")
	}
}
