package material

import (
	"math/rand"

	"github.com/df07/go-raycaster/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Determine which check we're in
			checkX := x / checkSize
			checkY := y / checkSize

			var color core.Vec3
			if (checkX+checkY)%2 == 0 {
				color = color1
			} else {
				color = color2
			}

			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))

		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewNoiseTexture creates a speckled texture around base, each channel
// offset by up to ±variation. The same seed always yields the same texels.
func NewNoiseTexture(width, height int, base core.Vec3, variation float64, seed int64) *ImageTexture {
	random := rand.New(rand.NewSource(seed))
	pixels := make([]core.Vec3, width*height)

	for i := range pixels {
		// One offset for all channels keeps the hue stable
		offset := (random.Float64()*2 - 1) * variation
		pixels[i] = base.Add(core.NewVec3(offset, offset, offset)).Clamp(0, 255)
	}

	return NewImageTexture(width, height, pixels)
}
