package lights

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Point is an omnidirectional light at a fixed position
type Point struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPoint creates a point light
func NewPoint(position, intensity core.Vec3) *Point {
	return &Point{Position: position, Intensity: intensity}
}

func (p *Point) Type() LightType   { return LightTypePoint }
func (p *Point) Origin() core.Vec3 { return p.Position }
func (p *Point) sealed()           {}

// DirectionTo returns the unit vector from point toward the light
func (p *Point) DirectionTo(point core.Vec3) core.Vec3 {
	return p.Position.Subtract(point).Normalize()
}

// Accumulate adds diffuse and specular terms when the surface is lit and faces the light
func (p *Point) Accumulate(acc *Accumulator, surface Surface, shadowed bool) {
	if shadowed {
		return
	}

	toLight := p.DirectionTo(surface.Point)
	cosine := toLight.Dot(surface.Normal)
	if cosine <= 0 {
		return
	}

	m := surface.Material
	acc.Diffuse = acc.Diffuse.Add(p.Intensity.MultiplyVec(m.KDiffuse).Multiply(cosine).NonNegative())

	// Mirror of the light direction about the normal
	reflected := surface.Normal.Multiply(2 * cosine).Subtract(toLight)
	alignment := reflected.Dot(surface.Ray.Direction)
	if alignment < 0 {
		return
	}
	highlight := math.Pow(alignment, float64(m.Shininess))
	acc.Specular = acc.Specular.Add(p.Intensity.MultiplyVec(m.KSpecular).Multiply(highlight).NonNegative())
}

// ConvertToCameraSpace transforms the light position
func (p *Point) ConvertToCameraSpace(transform core.Mat4) {
	p.Position = transform.MulPoint(p.Position)
}
