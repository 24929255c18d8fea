package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// phong accumulates every light over a surface point. base seeds the ambient
// term (texture color for textured planes, zero otherwise).
func phong(point, normal core.Vec3, ray core.Ray, mat material.Material, ls []lights.Light, shadowed []bool, base core.Vec3) core.Vec3 {
	acc := lights.Accumulator{Ambient: base}
	surface := lights.Surface{
		Point:    point,
		Normal:   normal,
		Ray:      ray,
		Material: mat,
	}
	lights.Shade(&acc, ls, surface, shadowed)
	return acc.Total()
}

// rotateDirection rotates a unit direction and renormalizes it
func rotateDirection(m core.Mat4, d core.Vec3) core.Vec3 {
	return m.MulDirection(d).Normalize()
}
