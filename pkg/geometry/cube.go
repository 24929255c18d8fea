package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Cube is a box built from twelve triangles, two per side.
// Hit.Part is the index of the winning face.
type Cube struct {
	Center   core.Vec3
	Material material.Material

	faces [12]*Triangle
}

// NewCube creates a box whose front-bottom-left corner is mainVertex,
// extending width along +X, height along +Y and depth along -Z
func NewCube(mainVertex core.Vec3, width, height, depth float64, mat material.Material) *Cube {
	m := mainVertex
	a := m.Add(core.NewVec3(width, 0, 0))
	b := m.Add(core.NewVec3(width, height, 0))
	c := m.Add(core.NewVec3(0, height, 0))
	d := m
	e := m.Add(core.NewVec3(width, 0, -depth))
	f := m.Add(core.NewVec3(width, height, -depth))
	g := m.Add(core.NewVec3(0, height, -depth))
	h := m.Add(core.NewVec3(0, 0, -depth))

	cube := &Cube{
		Center:   m.Add(core.NewVec3(width, height, -depth).Multiply(0.5)),
		Material: mat,
	}
	corners := [12][3]core.Vec3{
		{c, a, d}, {b, a, c}, // front
		{f, h, e}, {g, h, f}, // back
		{g, b, c}, {f, b, g}, // top
		{d, e, h}, {a, e, d}, // bottom
		{g, d, h}, {c, d, g}, // left
		{b, e, a}, {f, e, b}, // right
	}
	for i, v := range corners {
		cube.faces[i] = NewTriangle(v[0], v[1], v[2], mat)
	}
	return cube
}

func (c *Cube) sealed() {}

// Faces returns the twelve triangles in construction order
func (c *Cube) Faces() []*Triangle {
	return c.faces[:]
}

// Intersect keeps the nearest of the twelve faces
func (c *Cube) Intersect(ray core.Ray) Hit {
	var candidates [12]float64
	for i, face := range c.faces {
		candidates[i] = face.Intersect(ray).T
	}
	return nearestPart(candidates[:])
}

// Shade delegates to the face recorded in hit
func (c *Cube) Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3 {
	if hit.Part < 0 || hit.Part >= len(c.faces) {
		return core.Vec3{}
	}
	return c.faces[hit.Part].Shade(Hit{T: hit.T}, ray, ls, shadowed)
}

func (c *Cube) transform(m core.Mat4) {
	for _, face := range c.faces {
		face.transform(m)
	}
	c.Center = m.MulPoint(c.Center)
}

// Translate moves every face and the center
func (c *Cube) Translate(offset core.Vec3) { c.transform(core.Translation(offset)) }

// Scale scales every face about the world origin
func (c *Cube) Scale(factors core.Vec3) { c.transform(core.Scaling(factors)) }

// Rotations turn the cube around its own center
func (c *Cube) RotateX(angle float64) { c.rotateAboutCenter(core.RotationX(angle)) }
func (c *Cube) RotateY(angle float64) { c.rotateAboutCenter(core.RotationY(angle)) }
func (c *Cube) RotateZ(angle float64) { c.rotateAboutCenter(core.RotationZ(angle)) }

// rotateAboutCenter moves the faces to the origin, rotates, and moves them back
func (c *Cube) rotateAboutCenter(rotation core.Mat4) {
	toOrigin := core.Translation(c.Center.Negate())
	back := core.Translation(c.Center)
	m := back.Mul(rotation).Mul(toOrigin)
	for _, face := range c.faces {
		face.transform(m)
	}
}

// ConvertToCameraSpace transforms every face and the center
func (c *Cube) ConvertToCameraSpace(transform core.Mat4) {
	c.transform(transform)
}
