package material

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Texture provides per-texel RGB colors in the 0..255 range
type Texture interface {
	Width() int
	Height() int
	// RGB returns the color of texel (x, y); callers keep x and y within bounds
	RGB(x, y int) core.Vec3
}
