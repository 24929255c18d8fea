package material

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Material holds per-channel Phong reflectance coefficients
type Material struct {
	KAmbient  core.Vec3 // Ambient reflectance per channel
	KDiffuse  core.Vec3 // Diffuse reflectance per channel
	KSpecular core.Vec3 // Specular reflectance per channel
	Shininess int       // Specular exponent
}

// NewMaterial creates a material from explicit coefficients
func NewMaterial(kAmbient, kDiffuse, kSpecular core.Vec3, shininess int) Material {
	return Material{
		KAmbient:  kAmbient,
		KDiffuse:  kDiffuse,
		KSpecular: kSpecular,
		Shininess: shininess,
	}
}

// NewUniform creates a material using the same color for all three terms
func NewUniform(color core.Vec3, shininess int) Material {
	return NewMaterial(color, color, color, shininess)
}

// NewMatte creates a material without a specular highlight
func NewMatte(color core.Vec3) Material {
	return NewMaterial(color, color, core.Vec3{}, 1)
}

// WithColor returns a copy whose ambient and diffuse terms use color
func (m Material) WithColor(color core.Vec3) Material {
	m.KAmbient = color
	m.KDiffuse = color
	return m
}
