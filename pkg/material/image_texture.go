package material

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	width  int
	height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], channels in 0..255
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		width:  width,
		height: height,
		Pixels: pixels,
	}
}

// Width returns the texture width in texels
func (t *ImageTexture) Width() int { return t.width }

// Height returns the texture height in texels
func (t *ImageTexture) Height() int { return t.height }

// RGB returns the texel at (x, y), clamping out-of-range coordinates to the edge
func (t *ImageTexture) RGB(x, y int) core.Vec3 {
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return t.Pixels[y*t.width+x]
}
