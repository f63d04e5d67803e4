package bview

import "math"

// Mat4 is a 4x4 matrix in column-major order, matching what WebGL-style
// uniform uploads expect.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective builds a right-handed perspective projection.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// View builds the view matrix for an eye looking down -Z at the world
// plane, with an optional pitch (radians) applied for perspective mode.
// Rotation lives only here; the eye position itself never reacts to board
// panning.
func View(eye [3]float64, pitch float64) Mat4 {
	c, s := math.Cos(pitch), math.Sin(pitch)
	// Rx(pitch) * T(-eye)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		-eye[0], -eye[1]*c + eye[2]*s, -eye[1]*s - eye[2]*c, 1,
	}
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}
