package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Cone part indices reported in Hit.Part
const (
	ConeBody = iota
	ConeBase
)

// Cone represents a finite cone closed by a disc at its base
type Cone struct {
	Base     core.Vec3 // Center of the base disc
	Vertex   core.Vec3 // Apex
	Axis     core.Vec3 // Unit vector from Base to Vertex
	Angle    float64   // Half-angle at the apex, radians
	Radius   float64
	Height   float64
	Material material.Material

	base *Disc
}

// NewCone creates a cone from its half-angle, base center and apex
func NewCone(angle float64, base, vertex core.Vec3, mat material.Material) *Cone {
	height := vertex.Subtract(base).Length()
	c := &Cone{
		Base:     base,
		Vertex:   vertex,
		Axis:     vertex.Subtract(base).Normalize(),
		Angle:    angle,
		Radius:   height * math.Tan(angle),
		Height:   height,
		Material: mat,
	}
	c.updateCap()
	return c
}

// NewConeAlong creates a cone from a base radius, height, base center and direction
func NewConeAlong(radius, height float64, base, direction core.Vec3, mat material.Material) *Cone {
	axis := direction.Normalize()
	c := &Cone{
		Base:     base,
		Vertex:   base.Add(axis.Multiply(height)),
		Axis:     axis,
		Angle:    math.Atan(radius / height),
		Radius:   radius,
		Height:   height,
		Material: mat,
	}
	c.updateCap()
	return c
}

func (c *Cone) sealed() {}

func (c *Cone) updateCap() {
	c.base = NewDisc(c.Base, c.Axis.Negate(), c.Radius, c.Material)
}

// Intersect tests the lateral surface and the base disc, keeping the nearest
func (c *Cone) Intersect(ray core.Ray) Hit {
	candidates := [2]float64{
		c.intersectBody(ray),
		c.base.Intersect(ray).T,
	}
	return nearestPart(candidates[:])
}

// intersectBody solves the cone quadratic for points within [0, Height] of the base
func (c *Cone) intersectBody(ray core.Ray) float64 {
	v := c.Vertex.Subtract(ray.Origin)
	d := ray.Direction
	cos := math.Cos(c.Angle)
	cos2 := cos * cos
	du := d.Dot(c.Axis)
	vu := v.Dot(c.Axis)

	a := du*du - d.Dot(d)*cos2
	b := v.Dot(d)*cos2 - vu*du
	cc := vu*vu - v.Dot(v)*cos2

	discriminant := b*b - a*cc
	if a == 0 || discriminant < 0 {
		return Miss
	}

	t := (-math.Sqrt(discriminant) - b) / a
	h := ray.At(t).Subtract(c.Base).Dot(c.Axis)
	if h < 0 || h > c.Height {
		return Miss
	}
	return t
}

// Shade dispatches to the part recorded in hit
func (c *Cone) Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3 {
	if hit.Part == ConeBase {
		return c.base.Shade(Hit{T: hit.T}, ray, ls, shadowed)
	}

	point := ray.At(hit.T)
	toPoint := point.Subtract(c.Vertex)
	normal := c.Axis.Cross(toPoint).Cross(toPoint).Normalize().Negate()
	return phong(point, normal, ray, c.Material, ls, shadowed, core.Vec3{})
}

// Translate moves the base and apex
func (c *Cone) Translate(offset core.Vec3) {
	c.Base = c.Base.Add(offset)
	c.Vertex = c.Vertex.Add(offset)
	c.updateCap()
}

// Scale scales the radius by factors.X and the height by factors.Y, keeping the base fixed
func (c *Cone) Scale(factors core.Vec3) {
	c.Radius *= factors.X
	c.Height *= factors.Y
	c.Vertex = c.Base.Add(c.Axis.Multiply(c.Height))
	c.Angle = math.Atan(c.Radius / c.Height)
	c.updateCap()
}

// Rotations turn the axis around the base center
func (c *Cone) RotateX(angle float64) { c.rotate(core.RotationX(angle)) }
func (c *Cone) RotateY(angle float64) { c.rotate(core.RotationY(angle)) }
func (c *Cone) RotateZ(angle float64) { c.rotate(core.RotationZ(angle)) }

func (c *Cone) rotate(m core.Mat4) {
	c.Axis = rotateDirection(m, c.Axis)
	c.Vertex = c.Base.Add(c.Axis.Multiply(c.Height))
	c.updateCap()
}

// ConvertToCameraSpace transforms the base and apex and re-derives the axis and cap
func (c *Cone) ConvertToCameraSpace(transform core.Mat4) {
	c.Base = transform.MulPoint(c.Base)
	c.Vertex = transform.MulPoint(c.Vertex)
	c.Axis = c.Vertex.Subtract(c.Base).Normalize()
	c.updateCap()
}
