package bview

import "math"

// Camera eye presets. The devmode eye is pulled back so the whole
// coordinate plumbing can be inspected with the viewport edges visible.
var (
	eyeNormal  = [3]float64{0, 0, 12}
	eyeDevmode = [3]float64{0, 0, 18}
)

const (
	cameraNear = 0.1
	cameraFar  = 1500.0

	// fovPref is a user preference in the 0..1 range mapped onto this
	// span of vertical field-of-view degrees.
	fovDegMin = 40.0
	fovDegMax = 110.0
)

// Camera owns the fixed viewpoint geometry and everything derived from
// it: projection/view matrices, the world-space extents of the viewport,
// and the pixel-density scale thresholds. It is independent of board
// state; panning moves the board, never this.
type Camera struct {
	fov  float64 // vertical, radians
	near float64
	far  float64

	canvasW, canvasH float64 // virtual pixels
	pixelW, pixelH   float64 // physical pixels
	dpr              float64

	box    Box // world-space viewport extents, normal eye
	boxDev Box // same, devmode eye

	proj Mat4
	view Mat4

	devMode     bool
	pitch       float64 // perspective-mode tilt, radians
	initialized bool
}

func NewCamera() *Camera {
	return &Camera{near: cameraNear, far: cameraFar}
}

// Init computes the field of view from a 0..1 preference value, records
// canvas dimensions, and derives the screen bounding boxes and matrices.
// Must be called before any transform query.
func (c *Camera) Init(fovPref float64, canvasW, canvasH int, dpr float64) {
	if fovPref < 0 {
		fovPref = 0
	} else if fovPref > 1 {
		fovPref = 1
	}
	deg := fovDegMin + fovPref*(fovDegMax-fovDegMin)
	c.fov = deg * math.Pi / 180
	c.OnScreenResize(canvasW, canvasH, dpr)
	c.initialized = true
}

// OnScreenResize updates canvas dimensions and recomputes everything that
// depends on them.
func (c *Camera) OnScreenResize(canvasW, canvasH int, dpr float64) {
	if canvasW < 1 {
		canvasW = 1
	}
	if canvasH < 1 {
		canvasH = 1
	}
	if dpr <= 0 {
		dpr = 1
	}
	c.canvasW = float64(canvasW)
	c.canvasH = float64(canvasH)
	c.dpr = dpr
	c.pixelW = c.canvasW * dpr
	c.pixelH = c.canvasH * dpr
	c.recompute()
}

// SetFOVPref rederives the field of view from a changed preference.
func (c *Camera) SetFOVPref(fovPref float64) {
	c.Init(fovPref, int(c.canvasW), int(c.canvasH), c.dpr)
}

// SetDevMode switches between the normal and pulled-back eye.
func (c *Camera) SetDevMode(on bool) {
	c.devMode = on
	c.recompute()
}

// SetPitch sets the perspective-mode tilt applied to the view matrix.
func (c *Camera) SetPitch(rad float64) {
	c.pitch = rad
	c.recompute()
}

// recompute derives the screen bounding boxes and matrices. Pure
// trigonometry: half the vertical extent is tan(fov/2) times the eye
// distance, and the horizontal extent follows the aspect ratio.
func (c *Camera) recompute() {
	aspect := c.canvasW / c.canvasH
	for _, eye := range []struct {
		pos [3]float64
		dst *Box
	}{
		{eyeNormal, &c.box},
		{eyeDevmode, &c.boxDev},
	} {
		halfV := math.Tan(c.fov/2) * eye.pos[2]
		halfH := halfV * aspect
		*eye.dst = Box{Left: -halfH, Right: halfH, Bottom: -halfV, Top: halfV}
	}
	c.proj = Perspective(c.fov, aspect, c.near, c.far)
	c.view = View(c.Eye(), c.pitch)
}

// Eye returns the active eye position.
func (c *Camera) Eye() [3]float64 {
	if c.devMode {
		return eyeDevmode
	}
	return eyeNormal
}

// ScreenBox returns the world-space extents of the viewport for the
// active eye.
func (c *Camera) ScreenBox() Box {
	if c.devMode {
		return c.boxDev
	}
	return c.box
}

// Projection returns the projection matrix.
func (c *Camera) Projection() Mat4 { return c.proj }

// ViewMatrix returns the view matrix, including any perspective tilt.
func (c *Camera) ViewMatrix() Mat4 { return c.view }

// CanvasSize returns the virtual canvas dimensions.
func (c *Camera) CanvasSize() (w, h float64) { return c.canvasW, c.canvasH }

// PixelSize returns the physical canvas dimensions.
func (c *Camera) PixelSize() (w, h float64) { return c.pixelW, c.pixelH }

// DPR returns the device pixel ratio.
func (c *Camera) DPR() float64 { return c.dpr }

// PixelsPerWorld returns how many physical pixels one world unit spans
// for the active eye.
func (c *Camera) PixelsPerWorld() float64 {
	box := c.ScreenBox()
	return (c.pixelH / 2) / box.Top
}

// ScaleOnePhysicalPixel is the scale at which one board tile covers
// exactly one physical device pixel. Below it tiles are invisible as
// geometry.
func (c *Camera) ScaleOnePhysicalPixel() float64 {
	box := c.ScreenBox()
	return 2 * box.Top / c.pixelH
}

// ScaleOneVirtualPixel is the scale at which one tile covers one virtual
// pixel; the coarser zoomed-out rendering threshold.
func (c *Camera) ScaleOneVirtualPixel() float64 {
	box := c.ScreenBox()
	return 2 * box.Top / c.canvasH
}

// Initialized reports whether Init has run.
func (c *Camera) Initialized() bool { return c.initialized }
