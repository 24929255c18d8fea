package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Triangle is a flat face with absolute vertex coordinates
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   material.Material

	normal core.Vec3
}

// NewTriangle creates a triangle. The normal is normalize((V2-V1) x (V1-V0)).
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.updateNormal()
	return t
}

func (tr *Triangle) sealed() {}

// Normal returns the face normal
func (tr *Triangle) Normal() core.Vec3 {
	return tr.normal
}

func (tr *Triangle) updateNormal() {
	r1 := tr.V1.Subtract(tr.V0)
	r2 := tr.V2.Subtract(tr.V1)
	tr.normal = r2.Cross(r1).Normalize()
}

// Intersect solves the plane equation then applies a barycentric inside test
func (tr *Triangle) Intersect(ray core.Ray) Hit {
	t := planeParameter(ray, tr.V0, tr.normal)
	if t == Miss {
		return missHit
	}

	p := ray.At(t)
	r1 := tr.V1.Subtract(tr.V0)
	r2 := tr.V2.Subtract(tr.V1)
	area := r1.Cross(r2).Dot(tr.normal)
	if area == 0 {
		// Degenerate triangle
		return missHit
	}

	c1 := tr.V2.Subtract(p).Cross(tr.V0.Subtract(p)).Dot(tr.normal) / area
	c2 := tr.V0.Subtract(p).Cross(tr.V1.Subtract(p)).Dot(tr.normal) / area
	c3 := 1 - c1 - c2
	if c1 < 0 || c2 < 0 || c3 < 0 {
		return missHit
	}
	return Hit{T: t}
}

// Shade evaluates the face color at the hit
func (tr *Triangle) Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3 {
	return phong(ray.At(hit.T), tr.normal, ray, tr.Material, ls, shadowed, core.Vec3{})
}

// transform applies m to every vertex and recomputes the normal
func (tr *Triangle) transform(m core.Mat4) {
	tr.V0 = m.MulPoint(tr.V0)
	tr.V1 = m.MulPoint(tr.V1)
	tr.V2 = m.MulPoint(tr.V2)
	tr.updateNormal()
}

// Translate moves every vertex
func (tr *Triangle) Translate(offset core.Vec3) { tr.transform(core.Translation(offset)) }

// Scale scales every vertex about the world origin
func (tr *Triangle) Scale(factors core.Vec3) { tr.transform(core.Scaling(factors)) }

// Rotations are about the world origin
func (tr *Triangle) RotateX(angle float64) { tr.transform(core.RotationX(angle)) }
func (tr *Triangle) RotateY(angle float64) { tr.transform(core.RotationY(angle)) }
func (tr *Triangle) RotateZ(angle float64) { tr.transform(core.RotationZ(angle)) }

// ConvertToCameraSpace transforms the vertices as points
func (tr *Triangle) ConvertToCameraSpace(transform core.Mat4) {
	tr.transform(transform)
}
