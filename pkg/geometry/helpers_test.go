package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Compile-time checks that every shape satisfies the interface
var (
	_ Shape = (*Sphere)(nil)
	_ Shape = (*Plane)(nil)
	_ Shape = (*Disc)(nil)
	_ Shape = (*Triangle)(nil)
	_ Shape = (*Cylinder)(nil)
	_ Shape = (*Cone)(nil)
	_ Shape = (*Cube)(nil)
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func vecApproxEqual(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func testMaterial() material.Material {
	return material.NewMaterial(
		core.NewVec3(10, 10, 10),
		core.NewVec3(100, 50, 25),
		core.NewVec3(30, 30, 30),
		8,
	)
}
