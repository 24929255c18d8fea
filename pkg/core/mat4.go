package core

import "math"

// Mat4 is a row-major 4x4 homogeneous transform
type Mat4 [4][4]float64

// Identity returns the identity transform
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a transform that moves points by offset
func Translation(offset Vec3) Mat4 {
	m := Identity()
	m[0][3] = offset.X
	m[1][3] = offset.Y
	m[2][3] = offset.Z
	return m
}

// Scaling returns a transform that scales each axis independently
func Scaling(factors Vec3) Mat4 {
	m := Identity()
	m[0][0] = factors.X
	m[1][1] = factors.Y
	m[2][2] = factors.Z
	return m
}

// RotationX returns a counter-clockwise rotation about the X axis (radians)
func RotationX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[1][1], m[1][2] = c, -s
	m[2][1], m[2][2] = s, c
	return m
}

// RotationY returns a counter-clockwise rotation about the Y axis (radians)
func RotationY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = -s, c
	return m
}

// RotationZ returns a counter-clockwise rotation about the Z axis (radians)
func RotationZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0][0], m[0][1] = c, -s
	m[1][0], m[1][1] = s, c
	return m
}

// NewRigidTransform builds a transform from three basis rows and a position.
// Each row i is (axis_i, -axis_i · position), so the position maps to the origin.
func NewRigidTransform(right, up, back, position Vec3) Mat4 {
	return Mat4{
		{right.X, right.Y, right.Z, -right.Dot(position)},
		{up.X, up.Y, up.Z, -up.Dot(position)},
		{back.X, back.Y, back.Z, -back.Dot(position)},
		{0, 0, 0, 1},
	}
}

// Mul returns m * other, so other is applied first
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// MulPoint transforms a point (w = 1)
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// MulDirection transforms a direction (w = 0), ignoring translation
func (m Mat4) MulDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z,
		Y: m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z,
		Z: m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z,
	}
}
