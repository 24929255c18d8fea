package lights

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Ambient is a non-directional light applied uniformly to every surface
type Ambient struct {
	origin    core.Vec3
	Intensity core.Vec3
}

// NewAmbient creates an ambient light with the given per-channel intensity
func NewAmbient(intensity core.Vec3) *Ambient {
	return &Ambient{Intensity: intensity}
}

func (a *Ambient) Type() LightType   { return LightTypeAmbient }
func (a *Ambient) Origin() core.Vec3 { return a.origin }
func (a *Ambient) sealed()           {}

// DirectionTo always returns the zero vector
func (a *Ambient) DirectionTo(point core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Accumulate adds intensity ⊙ kAmbient regardless of shadowing
func (a *Ambient) Accumulate(acc *Accumulator, surface Surface, shadowed bool) {
	acc.Ambient = acc.Ambient.Add(a.Intensity.MultiplyVec(surface.Material.KAmbient).NonNegative())
}

// ConvertToCameraSpace transforms the nominal origin, which takes part in no geometry
func (a *Ambient) ConvertToCameraSpace(transform core.Mat4) {
	a.origin = transform.MulPoint(a.origin)
}
