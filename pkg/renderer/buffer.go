package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// ImageBuffer holds one real-valued grid per channel, indexed [row][col]
// with the origin at the top left
type ImageBuffer struct {
	Red   [][]float64
	Green [][]float64
	Blue  [][]float64

	rows, columns int
}

// NewImageBuffer creates a black buffer
func NewImageBuffer(rows, columns int) *ImageBuffer {
	grid := func() [][]float64 {
		g := make([][]float64, rows)
		for r := range g {
			g[r] = make([]float64, columns)
		}
		return g
	}
	return &ImageBuffer{
		Red:     grid(),
		Green:   grid(),
		Blue:    grid(),
		rows:    rows,
		columns: columns,
	}
}

func (b *ImageBuffer) Rows() int    { return b.rows }
func (b *ImageBuffer) Columns() int { return b.columns }

// Set stores a color at (row, col)
func (b *ImageBuffer) Set(row, col int, c core.Vec3) {
	b.Red[row][col] = c.X
	b.Green[row][col] = c.Y
	b.Blue[row][col] = c.Z
}

// At returns the color at (row, col)
func (b *ImageBuffer) At(row, col int) core.Vec3 {
	return core.NewVec3(b.Red[row][col], b.Green[row][col], b.Blue[row][col])
}

// Max returns the largest value across all channels and pixels
func (b *ImageBuffer) Max() float64 {
	max := 0.0
	for _, grid := range [][][]float64{b.Red, b.Green, b.Blue} {
		for _, row := range grid {
			for _, v := range row {
				if v > max {
					max = v
				}
			}
		}
	}
	return max
}

// Normalize clamps negative values to zero and scales every channel so the
// brightest value becomes 255. An all-black buffer is left unchanged.
func (b *ImageBuffer) Normalize() {
	for _, grid := range [][][]float64{b.Red, b.Green, b.Blue} {
		for _, row := range grid {
			for c, v := range row {
				if v < 0 {
					row[c] = 0
				}
			}
		}
	}

	// max/max is exactly 1, so the brightest value lands on 255 and a
	// second pass is a no-op
	max := b.Max()
	if max <= 0 || max == 255 {
		return
	}
	for _, grid := range [][][]float64{b.Red, b.Green, b.Blue} {
		for _, row := range grid {
			for c := range row {
				row[c] = row[c] / max * 255
			}
		}
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// ToRGBA converts the buffer to an image. Values are expected in [0, 255],
// so call Normalize first.
func (b *ImageBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.columns, b.rows))
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			img.SetRGBA(c, r, color.RGBA{
				R: toByte(b.Red[r][c]),
				G: toByte(b.Green[r][c]),
				B: toByte(b.Blue[r][c]),
				A: 255,
			})
		}
	}
	return img
}

// Bytes packs the buffer as row-major RGB8
func (b *ImageBuffer) Bytes() []byte {
	out := make([]byte, 0, b.rows*b.columns*3)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			out = append(out, toByte(b.Red[r][c]), toByte(b.Green[r][c]), toByte(b.Blue[r][c]))
		}
	}
	return out
}
