package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Camera defines the viewing frame. In camera space the camera sits at the
// origin with Back along +Z, so it looks down -Z.
type Camera struct {
	Position core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3

	Right  core.Vec3 // Derived basis
	UpAxis core.Vec3
	Back   core.Vec3

	worldToCamera core.Mat4
}

// NewCamera creates a camera and derives its orthonormal basis
func NewCamera(position, lookAt, up core.Vec3) *Camera {
	back := position.Subtract(lookAt).Normalize()
	right := up.Cross(back).Normalize()
	upAxis := back.Cross(right)

	return &Camera{
		Position:      position,
		LookAt:        lookAt,
		Up:            up,
		Right:         right,
		UpAxis:        upAxis,
		Back:          back,
		worldToCamera: core.NewRigidTransform(right, upAxis, back, position),
	}
}

// WorldToCamera returns the rigid transform mapping world coordinates into camera space
func (c *Camera) WorldToCamera() core.Mat4 {
	return c.worldToCamera
}
