package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
)

// Miss is the positive sentinel parameter reported when a ray has no valid hit.
// Valid hits are strictly negative; see core.Ray.
const Miss = 1.0

// Hit is the result of an intersection test. Part identifies which
// constituent of a composite shape produced the hit (0 for simple shapes).
type Hit struct {
	T    float64
	Part int
}

// Valid reports whether the hit parameter is a usable front-facing hit.
// NaN and +Inf compare false and are rejected.
func (h Hit) Valid() bool {
	return h.T < 0 && !isInf(h.T)
}

// Shape interface for objects that can be hit by rays and shaded.
// The set of implementations is closed to this package.
type Shape interface {
	// Intersect returns the nearest valid hit, or a Hit with T == Miss
	Intersect(ray core.Ray) Hit

	// Shade evaluates the color at a hit previously returned by Intersect.
	// shadowed[i] reports whether lights[i] is occluded at the hit point.
	Shade(hit Hit, ray core.Ray, ls []lights.Light, shadowed []bool) core.Vec3

	Translate(offset core.Vec3)
	Scale(factors core.Vec3)
	RotateX(angle float64)
	RotateY(angle float64)
	RotateZ(angle float64)

	// ConvertToCameraSpace applies transform to points and its rotation part to directions
	ConvertToCameraSpace(transform core.Mat4)

	sealed()
}
