package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/time/rate"

	"chessview/bview"
)

const (
	initialWindowW = 1024
	initialWindowH = 768

	// After this long with no input the momentum integration pauses and
	// redraws slow down.
	idleAfter = 45 * time.Second
)

// idleRedrawLimiter paces repaints while throttled; input resets the
// throttle, never the limiter.
var idleRedrawLimiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 1)

type Game struct {
	sess  *bview.Session
	match *match
	ptrs  *pointerTracker

	now       time.Time
	lastInput time.Time
	throttled bool
	devCam    bool

	dirty bool
	world *ebiten.Image

	canvasW, canvasH int
	dpr              float64
}

func newGame() *Game {
	g := &Game{ptrs: newPointerTracker(), dirty: true}
	g.sess = bview.NewSession(bview.Options{
		Pointers:  g.ptrs,
		MarkDirty: func() { g.dirty = true },
		Errorf:    logError,
		PlaySound: playMoveSound,
		HasVisual: hasVisual,
	})
	g.sess.Cam.Init(gs.FOVPref, initialWindowW, initialWindowH, 1)
	g.match = newMatch(g.sess, pgnPath)
	g.lastInput = time.Now()
	return g
}

func (g *Game) Update() error {
	g.now = time.Now()
	g.ptrs.refresh()

	if anyInput(g.ptrs) {
		g.lastInput = g.now
		g.throttled = false
	} else if g.now.Sub(g.lastInput) > idleAfter {
		g.throttled = true
	}
	g.sess.SetThrottled(g.throttled)

	g.handleKeys()
	if !g.sess.IsTeleporting() {
		handleWheel(g.sess)
	}
	g.match.update(g.now)
	g.sess.Update()
	return nil
}

func anyInput(t *pointerTracker) bool {
	for _, p := range t.ptrs {
		if p.Held {
			return true
		}
	}
	_, wy := ebiten.Wheel()
	return wy != 0 || len(inpututil.AppendJustPressedKeys(nil)) > 0
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.sess.UndoTransition()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		gs.Perspective = !gs.Perspective
		g.sess.SetPerspective(gs.Perspective)
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		gs.ShowHUD = !gs.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) && devMode {
		g.devCam = !g.devCam
		g.sess.Cam.SetDevMode(g.devCam)
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		corners := []bview.Coord{
			squareAt(g.match, 0, 0),
			squareAt(g.match, 7, 7),
		}
		area := bview.CalculateFromCoordsList(g.sess, corners)
		bview.InitTransitionFromArea(g.sess, area)
	}
}

// Draw repaints the board into an offscreen image only when something
// changed, then blits it and overlays the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if g.world == nil || g.world.Bounds() != b {
		g.world = ebiten.NewImage(b.Dx(), b.Dy())
		g.dirty = true
	}
	if g.dirty && (!g.throttled || idleRedrawLimiter.Allow()) {
		drawScene(g.world, g)
		g.dirty = false
	}
	screen.DrawImage(g.world, nil)

	if gs.ShowHUD {
		drawHUD(screen, g)
	}
}

// Layout runs the game at full device resolution; the camera hears about
// every size or density change.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := ebiten.Monitor().DeviceScaleFactor()
	if dpr <= 0 {
		dpr = 1
	}
	if outsideWidth != g.canvasW || outsideHeight != g.canvasH || dpr != g.dpr {
		g.canvasW, g.canvasH = outsideWidth, outsideHeight
		g.dpr = dpr
		g.sess.Cam.OnScreenResize(outsideWidth, outsideHeight, dpr)
		g.dirty = true
	}
	return int(float64(outsideWidth) * dpr), int(float64(outsideHeight) * dpr)
}

func runGame(g *Game) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("chessview")
	ebiten.SetWindowSize(initialWindowW, initialWindowH)
	ebiten.SetVsyncEnabled(gs.Vsync)

	op := &ebiten.RunGameOptions{ScreenTransparent: false}
	err := ebiten.RunGameWithOptions(g, op)
	if err != nil {
		log.Printf("ebiten: %v", err)
	}
	saveSettings()
	return err
}
