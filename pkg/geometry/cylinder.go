package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Cylinder part indices reported in Hit.Part
const (
	CylinderBody = iota
	CylinderTop
	CylinderBottom
)

// Cylinder represents a finite cylinder closed by two disc caps
type Cylinder struct {
	Base     core.Vec3 // Center of the bottom cap
	Top      core.Vec3 // Center of the top cap
	Axis     core.Vec3 // Unit vector from Base to Top
	Radius   float64
	Height   float64
	Material material.Material

	top, bottom *Disc
}

// NewCylinder creates a cylinder between two cap centers
func NewCylinder(radius float64, base, top core.Vec3, mat material.Material) *Cylinder {
	c := &Cylinder{
		Base:     base,
		Top:      top,
		Axis:     top.Subtract(base).Normalize(),
		Radius:   radius,
		Height:   top.Subtract(base).Length(),
		Material: mat,
	}
	c.updateCaps()
	return c
}

// NewCylinderAlong creates a cylinder from a base center, direction and height
func NewCylinderAlong(radius, height float64, base, direction core.Vec3, mat material.Material) *Cylinder {
	axis := direction.Normalize()
	return NewCylinder(radius, base, base.Add(axis.Multiply(height)), mat)
}

func (c *Cylinder) sealed() {}

// updateCaps rebuilds the caps from the current axis, centers and radius
func (c *Cylinder) updateCaps() {
	c.top = NewDisc(c.Top, c.Axis, c.Radius, c.Material)
	c.bottom = NewDisc(c.Base, c.Axis.Negate(), c.Radius, c.Material)
}

// Intersect tests the lateral surface and both caps, keeping the nearest
func (c *Cylinder) Intersect(ray core.Ray) Hit {
	candidates := [3]float64{
		c.intersectBody(ray),
		c.top.Intersect(ray).T,
		c.bottom.Intersect(ray).T,
	}
	return nearestPart(candidates[:])
}

// intersectBody solves for points at distance Radius from the axis within [0, Height]
func (c *Cylinder) intersectBody(ray core.Ray) float64 {
	w := ray.Origin.Subtract(c.Base)
	d := ray.Direction
	du := d.Dot(c.Axis)
	wu := w.Dot(c.Axis)

	a := d.Dot(d) - du*du
	b := 2 * (w.Dot(d) - wu*du)
	cc := w.Dot(w) - wu*wu - c.Radius*c.Radius

	discriminant := b*b - 4*a*cc
	if a == 0 || discriminant < 0 {
		return Miss
	}

	t := (math.Sqrt(discriminant) - b) / (2 * a)
	h := ray.At(t).Subtract(c.Base).Dot(c.Axis)
	if h < 0 || h > c.Height {
		return Miss
	}
	return t
}

// Shade dispatches to the part recorded in hit
func (c *Cylinder) Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3 {
	switch hit.Part {
	case CylinderTop:
		return c.top.Shade(Hit{T: hit.T}, ray, ls, shadowed)
	case CylinderBottom:
		return c.bottom.Shade(Hit{T: hit.T}, ray, ls, shadowed)
	}

	point := ray.At(hit.T)
	v := point.Subtract(c.Base)
	normal := v.Subtract(c.Axis.Multiply(v.Dot(c.Axis))).Normalize()
	return phong(point, normal, ray, c.Material, ls, shadowed, core.Vec3{})
}

// Translate moves both cap centers
func (c *Cylinder) Translate(offset core.Vec3) {
	c.Base = c.Base.Add(offset)
	c.Top = c.Top.Add(offset)
	c.updateCaps()
}

// Scale scales the radius by factors.X and the height by factors.Y, keeping the base fixed
func (c *Cylinder) Scale(factors core.Vec3) {
	c.Radius *= factors.X
	c.Height *= factors.Y
	c.Top = c.Base.Add(c.Axis.Multiply(c.Height))
	c.updateCaps()
}

// Rotations turn the axis around the base center
func (c *Cylinder) RotateX(angle float64) { c.rotate(core.RotationX(angle)) }
func (c *Cylinder) RotateY(angle float64) { c.rotate(core.RotationY(angle)) }
func (c *Cylinder) RotateZ(angle float64) { c.rotate(core.RotationZ(angle)) }

func (c *Cylinder) rotate(m core.Mat4) {
	c.Axis = rotateDirection(m, c.Axis)
	c.Top = c.Base.Add(c.Axis.Multiply(c.Height))
	c.updateCaps()
}

// ConvertToCameraSpace transforms both centers and re-derives the axis and caps
func (c *Cylinder) ConvertToCameraSpace(transform core.Mat4) {
	c.Base = transform.MulPoint(c.Base)
	c.Top = transform.MulPoint(c.Top)
	c.Axis = c.Top.Subtract(c.Base).Normalize()
	c.updateCaps()
}
