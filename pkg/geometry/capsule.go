package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Capsule is a coarse bounding volume: an infinite lateral cylinder test
// plus two end discs. It only rejects rays and is never shaded.
type Capsule struct {
	Base   core.Vec3
	Top    core.Vec3
	Axis   core.Vec3
	Radius float64
}

// NewCapsule creates a bounding capsule between two centers
func NewCapsule(radius float64, base, top core.Vec3) *Capsule {
	return &Capsule{
		Base:   base,
		Top:    top,
		Axis:   top.Subtract(base).Normalize(),
		Radius: radius,
	}
}

// Intersects reports whether the ray may hit anything inside the capsule
func (c *Capsule) Intersects(ray core.Ray) bool {
	w := ray.Origin.Subtract(c.Base)
	d := ray.Direction
	du := d.Dot(c.Axis)
	wu := w.Dot(c.Axis)

	a := d.Dot(d) - du*du
	b := 2 * (w.Dot(d) - wu*du)
	cc := w.Dot(w) - wu*wu - c.Radius*c.Radius
	if a != 0 && b*b-4*a*cc >= 0 {
		return true
	}

	// Rays parallel to the axis can only enter through the ends
	return c.endHit(ray, c.Base, c.Axis.Negate()) || c.endHit(ray, c.Top, c.Axis)
}

func (c *Capsule) endHit(ray core.Ray, center, normal core.Vec3) bool {
	t := planeParameter(ray, center, normal)
	if t == Miss {
		return false
	}
	return ray.At(t).Subtract(center).LengthSquared() <= c.Radius*c.Radius
}

// Translate moves both centers
func (c *Capsule) Translate(offset core.Vec3) {
	c.Base = c.Base.Add(offset)
	c.Top = c.Top.Add(offset)
}

// ConvertToCameraSpace transforms both centers and re-derives the axis
func (c *Capsule) ConvertToCameraSpace(transform core.Mat4) {
	c.Base = transform.MulPoint(c.Base)
	c.Top = transform.MulPoint(c.Top)
	c.Axis = c.Top.Subtract(c.Base).Normalize()
}
