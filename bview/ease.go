package bview

// easeInOut is the shared cubic-smoothstep reparameterization of linear
// progress. Transitions and animations both run on it so camera motion
// and piece motion accelerate identically.
func easeInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
