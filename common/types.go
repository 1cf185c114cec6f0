// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Vec3 is a three component float vector (x, y, z).
type Vec3 [3]float32

// Vec4 is a four component float vector (x, y, z, w), also used for RGBA colors.
type Vec4 [4]float32

// Quat is a rotation quaternion stored as (x, y, z, w), matching the glTF component order.
type Quat [4]float32

// Mat4 is a 4x4 matrix stored in column-major order.
type Mat4 [16]float32

// IdentityQuat returns the identity rotation (0, 0, 0, 1).
//
// Returns:
//   - Quat: the identity quaternion
func IdentityQuat() Quat {
	return Quat{0, 0, 0, 1}
}

// IdentityMat4 returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func IdentityMat4() Mat4 {
	var m Mat4
	Identity(m[:])
	return m
}

// OneVec3 returns the vector (1, 1, 1), the neutral scale.
//
// Returns:
//   - Vec3: a vector with every component set to one
func OneVec3() Vec3 {
	return Vec3{1, 1, 1}
}

// OneVec4 returns the vector (1, 1, 1, 1), the neutral color factor.
//
// Returns:
//   - Vec4: a vector with every component set to one
func OneVec4() Vec4 {
	return Vec4{1, 1, 1, 1}
}
