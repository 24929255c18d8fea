package lights

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

type LightType string

const (
	LightTypeAmbient LightType = "ambient"
	LightTypePoint   LightType = "point"
)

// Light contributes ambient, diffuse and specular terms to a shaded surface.
// The set of implementations is closed: Ambient and Point.
type Light interface {
	Type() LightType

	// Origin is the light's position; shadow rays are cast from it
	Origin() core.Vec3

	// DirectionTo returns the unit vector from point toward the light.
	// A zero vector means the light is non-directional and never shadowed.
	DirectionTo(point core.Vec3) core.Vec3

	// Accumulate adds this light's contribution for one surface sample
	Accumulate(acc *Accumulator, surface Surface, shadowed bool)

	// ConvertToCameraSpace moves the light into the frame given by the transform
	ConvertToCameraSpace(transform core.Mat4)

	sealed()
}

// Surface describes the shaded point passed to Accumulate
type Surface struct {
	Point    core.Vec3
	Normal   core.Vec3 // unit length
	Ray      core.Ray  // primary ray; its direction points back toward the eye
	Material material.Material
}

// Accumulator collects per-term contributions across all lights
type Accumulator struct {
	Ambient  core.Vec3
	Diffuse  core.Vec3
	Specular core.Vec3
}

// Total returns the sum of the three terms
func (a Accumulator) Total() core.Vec3 {
	return a.Ambient.Add(a.Diffuse).Add(a.Specular)
}

// Shade runs every light over the surface in order. shadowed[i] belongs to
// lights[i]; a short or nil slice means unshadowed.
func Shade(acc *Accumulator, ls []Light, surface Surface, shadowed []bool) {
	for i, light := range ls {
		inShadow := i < len(shadowed) && shadowed[i]
		light.Accumulate(acc, surface, inShadow)
	}
}
