// Package quaternions provides 3D vectors, quaternions, axis-angle rotations and 3x3 rotation matrices as small
// immutable value types, along with conversions between the rotation forms.
//
// Rotations follow the right-hand rule, and quaternion products compose right to left: a.Mul(b) applies b first.
// Operations that only make sense for unit rotation quaternions (Quaternion.Rotated, Quaternion.RotateVector)
// report a second false return value rather than producing a skewed result.
package quaternions
