package bview

// catmullRom returns the Catmull-Rom spline interpolated value for t in [0,1].
func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) + (-p0+p2)*t + (2*p0-5*p1+4*p2-p3)*t2 + (-p0+3*p1-3*p2+p3)*t3)
}

// expandSpline resamples a waypoint polyline into a smooth path with
// splineResolution points per segment, endpoints clamped to the original
// waypoints. Input and output are float64 offsets in a frame local to the
// path's first waypoint; the caller converts back to exact coordinates.
func expandSpline(pts []Vec2) []Vec2 {
	if len(pts) < 3 {
		return pts
	}
	out := make([]Vec2, 0, (len(pts)-1)*splineResolution+1)
	at := func(i int) Vec2 {
		// Clamp endpoints so the first and last segments get duplicated
		// control points instead of phantom ones.
		if i < 0 {
			i = 0
		} else if i >= len(pts) {
			i = len(pts) - 1
		}
		return pts[i]
	}
	for i := 0; i < len(pts)-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		for j := 0; j < splineResolution; j++ {
			t := float64(j) / splineResolution
			out = append(out, Vec2{
				X: catmullRom(p0.X, p1.X, p2.X, p3.X, t),
				Y: catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, t),
			})
		}
	}
	out = append(out, pts[len(pts)-1])
	return out
}
