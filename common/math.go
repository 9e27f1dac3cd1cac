package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the default tolerance used by the approximate comparison helpers.
const Epsilon float32 = 1e-5

// Slerp spherically interpolates between two rotations along the shortest arc.
// A factor at or below 0 returns from unchanged and a factor at or above 1 returns to unchanged,
// so callers blending with a zero weight never perturb the accumulated rotation.
//
// Parameters:
//   - factor: interpolation amount in [0, 1]
//   - from: the starting rotation
//   - to: the target rotation
//
// Returns:
//   - mgl32.Quat: the interpolated rotation
func Slerp(factor float32, from, to mgl32.Quat) mgl32.Quat {
	if factor <= 0 {
		return from
	}
	if factor >= 1 {
		return to
	}
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl32.QuatSlerp(from, to, factor)
}

// Lerp linearly interpolates between two vectors.
//
// Parameters:
//   - factor: interpolation amount in [0, 1]
//   - from: the starting vector
//   - to: the target vector
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func Lerp(factor float32, from, to mgl32.Vec3) mgl32.Vec3 {
	if factor <= 0 {
		return from
	}
	if factor >= 1 {
		return to
	}
	return from.Add(to.Sub(from).Mul(factor))
}

// Clamp01 restricts v to the closed unit interval.
func Clamp01(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}

// ApproxEqual reports whether a and b differ by no more than eps.
//
// Parameters:
//   - a, b: the values to compare
//   - eps: the absolute tolerance
//
// Returns:
//   - bool: true if |a-b| <= eps
func ApproxEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

// ApproxEqualVec3 reports whether every component of a and b differs by no more than eps.
//
// Parameters:
//   - a, b: the vectors to compare
//   - eps: the absolute tolerance per component
//
// Returns:
//   - bool: true if all components are within eps
func ApproxEqualVec3(a, b mgl32.Vec3, eps float32) bool {
	return ApproxEqual(a[0], b[0], eps) && ApproxEqual(a[1], b[1], eps) && ApproxEqual(a[2], b[2], eps)
}

// ZUpToYUp converts a vector from a Z-up coordinate system into a Y-up one.
//
// Parameters:
//   - v: the Z-up vector
//
// Returns:
//   - mgl32.Vec3: the same direction expressed Y-up
func ZUpToYUp(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], -v[1]}
}
