package bview

import "time"

// Tuning constants. These are feel constants, not derived quantities;
// changing them changes visible behavior, so they live here by name
// instead of being scattered through the code.
const (
	// maxScale caps zoom-in. Hitting the cap also zeroes scale velocity.
	maxScale = 20.0

	// scaleFloor is the soft zoom-out limit. Below it, zoom-out momentum
	// and pinch ratios are damped by scale/scaleFloor so the limit feels
	// springy instead of hitting a wall.
	scaleFloor = 1.0e-4

	// paddingIterations bounds the fixed-point iteration that resolves the
	// padding/scale circular dependency in area framing.
	paddingIterations = 10

	// paddingFrac is the fraction of the screen dimension reserved as
	// padding around a framed area. paddingFracZoomedOut applies once the
	// resulting scale falls below the mini-icon threshold, where tighter
	// framing reads badly.
	paddingFrac          = 0.03
	paddingFracZoomedOut = 0.08

	// minVisibleTiles stops area framing from zooming absurdly close:
	// at least this many tiles stay visible vertically.
	minVisibleTiles = 17

	// historyCap bounds the transition undo history.
	historyCap = 20

	// throwWindow is how far back the drag sample history reaches when a
	// release derives throw velocity.
	throwWindow = 80 * time.Millisecond

	// panDuration is the constant duration of pan transitions; distance
	// beyond maxPanScreens is teleported over, never stretched into time.
	panDuration = 800 * time.Millisecond

	// maxPanScreens is the maximum pan distance actually traversed on each
	// side of a teleporting pan, in screen heights of world space.
	maxPanScreens = 2.0

	// Zoom transition duration: base plus a cost per natural-log unit of
	// scale change. Perspective mode stretches the result because the same
	// duration reads faster with the camera tilted.
	zoomDurationBase   = 300 * time.Millisecond
	zoomDurationPerLn  = 70 * time.Millisecond
	perspectiveDurMult = 1.35

	// Animation durations: base plus a cost per board unit of path length,
	// capped at animTeleportCap units. Curved paths (3+ waypoints) cost
	// more per unit so the shape stays readable.
	animDurationBase      = 150 * time.Millisecond
	animDurationPerUnit   = 18 * time.Millisecond
	animDurationPerUnitC  = 27 * time.Millisecond
	animTeleportCap       = 80.0

	// soundLead schedules move sounds slightly before the visual end so
	// playback latency does not read as a late click.
	soundLead = 35 * time.Millisecond

	// splineResolution is how many path points each original waypoint
	// segment expands to when a path has 3+ waypoints.
	splineResolution = 10

	// squareCenter is where inside its square a piece is drawn, as a
	// fraction of the square in each axis.
	squareCenterX = 0.5
	squareCenterY = 0.5
)
