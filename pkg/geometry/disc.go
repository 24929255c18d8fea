package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Disc is a bounded plane, used on its own and as the caps of cylinders and cones
type Disc struct {
	Center   core.Vec3
	Normal   core.Vec3
	Radius   float64
	Material material.Material
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat material.Material) *Disc {
	return &Disc{
		Center:   center,
		Normal:   normal.Normalize(),
		Radius:   radius,
		Material: mat,
	}
}

func (d *Disc) sealed() {}

// Intersect solves the plane equation and rejects points outside the radius
func (d *Disc) Intersect(ray core.Ray) Hit {
	t := planeParameter(ray, d.Center, d.Normal)
	if t == Miss {
		return missHit
	}
	if ray.At(t).Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return missHit
	}
	return Hit{T: t}
}

// Shade evaluates the disc color at the hit
func (d *Disc) Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3 {
	return phong(ray.At(hit.T), d.Normal, ray, d.Material, ls, shadowed, core.Vec3{})
}

// Translate moves the disc center
func (d *Disc) Translate(offset core.Vec3) {
	d.Center = d.Center.Add(offset)
}

// Scale scales the radius by factors.X
func (d *Disc) Scale(factors core.Vec3) {
	d.Radius *= factors.X
}

// Rotations turn the disc in place around its center
func (d *Disc) RotateX(angle float64) { d.Normal = rotateDirection(core.RotationX(angle), d.Normal) }
func (d *Disc) RotateY(angle float64) { d.Normal = rotateDirection(core.RotationY(angle), d.Normal) }
func (d *Disc) RotateZ(angle float64) { d.Normal = rotateDirection(core.RotationZ(angle), d.Normal) }

// ConvertToCameraSpace transforms the center as a point and the normal as a direction
func (d *Disc) ConvertToCameraSpace(transform core.Mat4) {
	d.Center = transform.MulPoint(d.Center)
	d.Normal = rotateDirection(transform, d.Normal)
}
