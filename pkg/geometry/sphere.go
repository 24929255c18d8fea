package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

func (s *Sphere) sealed() {}

// Intersect tests the ray against the sphere
func (s *Sphere) Intersect(ray core.Ray) Hit {
	// Vector from sphere center to ray origin
	w := ray.Origin.Subtract(s.Center)

	// Direction is unit length, so the quadratic is t² + 2bt + c = 0
	b := w.Dot(ray.Direction)
	c := w.Dot(w) - s.Radius*s.Radius

	discriminant := b*b - c
	if discriminant < 0 {
		return missHit
	}

	// The larger root is the surface nearest the ray origin
	return Hit{T: math.Sqrt(discriminant) - b}
}

// Shade evaluates the sphere color at the hit
func (s *Sphere) Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3 {
	point := ray.At(hit.T)
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	return phong(point, normal, ray, s.Material, ls, shadowed, core.Vec3{})
}

// Translate moves the sphere center
func (s *Sphere) Translate(offset core.Vec3) {
	s.Center = s.Center.Add(offset)
}

// Scale scales the radius by factors.X
func (s *Sphere) Scale(factors core.Vec3) {
	s.Radius *= factors.X
}

// Rotations have no visible effect on a sphere
func (s *Sphere) RotateX(angle float64) {}
func (s *Sphere) RotateY(angle float64) {}
func (s *Sphere) RotateZ(angle float64) {}

// ConvertToCameraSpace transforms the center
func (s *Sphere) ConvertToCameraSpace(transform core.Mat4) {
	s.Center = transform.MulPoint(s.Center)
}
