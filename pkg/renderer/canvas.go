package renderer

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Canvas is the projection plane in camera space. It is centered on the
// -Z axis at Distance from the origin and divided into Columns x Rows cells.
type Canvas struct {
	Distance float64
	Width    float64
	Height   float64
	Columns  int
	Rows     int
}

// NewCanvas creates the canvas described by a scene view
func NewCanvas(view scene.View) Canvas {
	return Canvas{
		Distance: view.Distance,
		Width:    view.Width,
		Height:   view.Height,
		Columns:  view.Columns,
		Rows:     view.Rows,
	}
}

// CellSize returns the width and height of one pixel on the plane
func (c Canvas) CellSize() (dx, dy float64) {
	return c.Width / float64(c.Columns), c.Height / float64(c.Rows)
}

// SamplePoint returns the center of the cell at (row, col). Row 0 is the top.
func (c Canvas) SamplePoint(row, col int) core.Vec3 {
	dx, dy := c.CellSize()
	x := -c.Width/2 + float64(col)*dx + dx/2
	y := c.Height/2 - float64(row)*dy - dy/2
	return core.NewVec3(x, y, -c.Distance)
}

// PrimaryRay is the ray cast from eye through the cell at (row, col)
func (c Canvas) PrimaryRay(eye core.Vec3, row, col int) core.Ray {
	return core.NewRay(eye, c.SamplePoint(row, col))
}

// PickRay maps a screen coordinate (x right, y down) to a ray from eye
func (c Canvas) PickRay(eye core.Vec3, x, y int) core.Ray {
	return c.PrimaryRay(eye, y, x)
}

// Contains reports whether a screen coordinate lies on the canvas
func (c Canvas) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Columns && y < c.Rows
}
