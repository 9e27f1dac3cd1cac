// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Color32 is a packed 8-bit-per-channel RGBA color (R in the lowest byte).
type Color32 uint32

// NewColor32 packs four 8-bit channels into a Color32.
//
// Parameters:
//   - r, g, b, a: the channel values
//
// Returns:
//   - Color32: the packed color
func NewColor32(r, g, b, a uint8) Color32 {
	return Color32(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24)
}

// RGBA unpacks the color into its four channels.
func (c Color32) RGBA() (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// BoundingBox is an axis-aligned bounding volume.
type BoundingBox struct {
	// Min is the minimum corner.
	Min mgl32.Vec3

	// Max is the maximum corner.
	Max mgl32.Vec3
}

// NewBoundingBox creates a degenerate box containing only p.
//
// Parameters:
//   - p: the single point the box starts from
//
// Returns:
//   - BoundingBox: a box with Min == Max == p
func NewBoundingBox(p mgl32.Vec3) BoundingBox {
	return BoundingBox{Min: p, Max: p}
}

// Extend grows the box to include p.
//
// Parameters:
//   - p: the point to include
//
// Returns:
//   - BoundingBox: the grown box
func (b BoundingBox) Extend(p mgl32.Vec3) BoundingBox {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Contains reports whether p lies inside the box, boundaries included.
func (b BoundingBox) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
