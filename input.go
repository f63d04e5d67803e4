package main

import (
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"

	"chessview/bview"
)

var isWasm = runtime.GOOS == "js" && runtime.GOARCH == "wasm"

// Browsers deliver wheel events far faster than the zoom needs; limit
// them so one flick does not stack a huge impulse.
var wheelLimiter = rate.NewLimiter(rate.Every(125*time.Millisecond), 1)

const (
	mousePointerID = 0
	touchPointerID = 1 // touch IDs are offset past the mouse

	wheelZoomRate  = 1.6
	wheelZoomDecay = 0.88
)

// pointerTracker unifies the mouse cursor and touches into one pointer
// list per frame and arbitrates them with a claim map, so the board drag
// and any UI layered above it never double-handle an event.
type pointerTracker struct {
	touchIDs []ebiten.TouchID
	ptrs     []bview.Pointer
	claimed  map[int]bool
}

func newPointerTracker() *pointerTracker {
	return &pointerTracker{claimed: make(map[int]bool)}
}

// refresh rebuilds the pointer list for this frame and releases all
// claims.
func (t *pointerTracker) refresh() {
	t.ptrs = t.ptrs[:0]
	for id := range t.claimed {
		delete(t.claimed, id)
	}

	mx, my := ebiten.CursorPosition()
	t.ptrs = append(t.ptrs, bview.Pointer{
		ID:   mousePointerID,
		Pos:  bview.Vec2{X: float64(mx), Y: float64(my)},
		Held: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})

	t.touchIDs = ebiten.AppendTouchIDs(t.touchIDs[:0])
	for _, tid := range t.touchIDs {
		x, y := ebiten.TouchPosition(tid)
		t.ptrs = append(t.ptrs, bview.Pointer{
			ID:   touchPointerID + int(tid),
			Pos:  bview.Vec2{X: float64(x), Y: float64(y)},
			Held: true,
		})
	}
}

func (t *pointerTracker) Pointers() []bview.Pointer { return t.ptrs }

// Claim grants a pointer to exactly one consumer per frame.
func (t *pointerTracker) Claim(id int) bool {
	if t.claimed[id] {
		return false
	}
	t.claimed[id] = true
	return true
}

// handleWheel converts wheel movement into zoom momentum. The impulse
// accumulates while the user keeps scrolling and decays once they stop,
// so the zoom coasts to a halt instead of cutting off.
func handleWheel(sess *bview.Session) {
	_, wy := ebiten.Wheel()
	if wy != 0 {
		if isWasm && !wheelLimiter.Allow() {
			wy = 0
		}
	}
	v := sess.Board.ScaleVelocity()
	if wy != 0 {
		v += wy * wheelZoomRate
	}
	v *= wheelZoomDecay
	if v > -1e-3 && v < 1e-3 {
		v = 0
	}
	sess.Board.SetScaleVelocity(v)
}
