package core

// Ray is a line query through the scene.
//
// Rays are built from a source and a target point, and the stored direction
// points from the target back toward the source. Every intersection routine
// therefore reports hits in front of the source with a negative parameter,
// and At(t) for such a t lies between the source and beyond the target.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // unit length, target -> source
}

// NewRay creates a ray anchored at source whose direction is normalize(source - target)
func NewRay(source, target Vec3) Ray {
	return Ray{Origin: source, Direction: source.Subtract(target).Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
