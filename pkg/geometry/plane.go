package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Plane represents an infinite plane, optionally texture mapped
type Plane struct {
	Center   core.Vec3 // Point on the plane, also the texture origin
	Normal   core.Vec3 // Unit normal
	Material material.Material
	Texture  material.Texture // nil for an untextured plane

	axis1, axis2 core.Vec3 // In-plane texture axes
}

// NewPlane creates an untextured plane
func NewPlane(center, normal core.Vec3, mat material.Material) *Plane {
	p := &Plane{
		Center:   center,
		Normal:   normal.Normalize(),
		Material: mat,
	}
	p.updateAxes()
	return p
}

// NewTexturedPlane creates a plane whose ambient term is sampled from texture
func NewTexturedPlane(center, normal core.Vec3, mat material.Material, texture material.Texture) *Plane {
	p := NewPlane(center, normal, mat)
	p.Texture = texture
	return p
}

func (p *Plane) sealed() {}

// TextureAxes returns the two in-plane orthonormal axes used for texture lookup
func (p *Plane) TextureAxes() (core.Vec3, core.Vec3) {
	return p.axis1, p.axis2
}

// updateAxes derives the texture axes from the normal. The first axis is
// built around the normal component of smallest magnitude, ties going to
// the lowest index.
func (p *Plane) updateAxes() {
	n := p.Normal
	smallest := 0
	for i := 1; i < 3; i++ {
		if math.Abs(n.Component(i)) < math.Abs(n.Component(smallest)) {
			smallest = i
		}
	}

	var axis core.Vec3
	switch smallest {
	case 0:
		axis = core.NewVec3(0, -n.Z, n.Y)
	case 1:
		axis = core.NewVec3(-n.Z, 0, n.X)
	default:
		axis = core.NewVec3(-n.Y, n.X, 0)
	}

	p.axis1 = axis.Normalize()
	p.axis2 = n.Cross(p.axis1).Normalize()
}

// Intersect solves the ray-plane equation
func (p *Plane) Intersect(ray core.Ray) Hit {
	return Hit{T: planeParameter(ray, p.Center, p.Normal)}
}

// planeParameter returns the negative hit parameter against an infinite plane, or Miss
func planeParameter(ray core.Ray, center, normal core.Vec3) float64 {
	denominator := normal.Dot(ray.Direction)
	if denominator == 0 {
		// Ray parallel to the plane
		return Miss
	}

	t := -normal.Dot(ray.Origin.Subtract(center)) / denominator
	if t < 0 {
		return t
	}
	return Miss
}

// TexelAt returns the texture color for a point on the plane
func (p *Plane) TexelAt(point core.Vec3) core.Vec3 {
	if p.Texture == nil {
		return core.Vec3{}
	}

	offset := point.Subtract(p.Center)
	u := wrap(int(p.axis1.Dot(offset)), p.Texture.Width())
	v := wrap(int(p.axis2.Dot(offset)), p.Texture.Height())
	return p.Texture.RGB(u, v)
}

// wrap maps |value| into [0, extent)
func wrap(value, extent int) int {
	if value < 0 {
		value = -value
	}
	if extent <= 0 {
		return 0
	}
	return value % extent
}

// Shade evaluates the plane color, seeding ambient with the texel when textured
func (p *Plane) Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3 {
	point := ray.At(hit.T)
	return phong(point, p.Normal, ray, p.Material, ls, shadowed, p.TexelAt(point))
}

// Translate moves the plane's reference point
func (p *Plane) Translate(offset core.Vec3) {
	p.Center = p.Center.Add(offset)
}

// Scale has no effect on an infinite plane
func (p *Plane) Scale(factors core.Vec3) {}

func (p *Plane) RotateX(angle float64) { p.rotate(core.RotationX(angle)) }
func (p *Plane) RotateY(angle float64) { p.rotate(core.RotationY(angle)) }
func (p *Plane) RotateZ(angle float64) { p.rotate(core.RotationZ(angle)) }

func (p *Plane) rotate(m core.Mat4) {
	p.Normal = rotateDirection(m, p.Normal)
	p.updateAxes()
}

// ConvertToCameraSpace transforms the center as a point and the normal as a direction
func (p *Plane) ConvertToCameraSpace(transform core.Mat4) {
	p.Center = transform.MulPoint(p.Center)
	p.Normal = rotateDirection(transform, p.Normal)
	p.updateAxes()
}
