package quaternions

// AxisAngle represents a rotation in radians around a given 3D axis. This being the case, an AxisAngle can easily also be stored in a 4-dimensional vector; it's separated
// here into a 3D Vector3 and angle for simplicity and readability.
// The Axis is expected to be of unit length, but an AxisAngle literal keeps whatever Axis it was given.
type AxisAngle struct {
	Axis  Vector3 // 3 dimensional axis for rotating
	Angle float64 // Rotation in radians
}

// NewAxisAngle creates a new AxisAngle out of the given 3D vector axis and angular rotation. The axis is normalized.
func NewAxisAngle(axis Vector3, angle float64) AxisAngle {
	return AxisAngle{
		Axis:  axis.Normalized(),
		Angle: angle,
	}
}

// Quaternion returns the rotation Quaternion for the AxisAngle; see QuaternionFromRotation().
func (aa AxisAngle) Quaternion() Quaternion {
	return QuaternionFromRotation(aa)
}

// RotateVector rotates the given Vector3 counter-clockwise around the axis by the angle, returning a rotated copy of it.
// For example, an AxisAngle with an Axis of [0, 0, 1] and an Angle of pi / 2 would rotate [1, 0, 0] to [0, 1, 0].
// RotateVector returns false if the Axis isn't of unit length.
func (aa AxisAngle) RotateVector(vec Vector3) (Vector3, bool) {
	return aa.Quaternion().RotateVector(vec)
}

// Add composes the two rotations, returning the rotation that applies the calling AxisAngle first and the other second.
func (aa AxisAngle) Add(other AxisAngle) AxisAngle {
	return other.Quaternion().Mul(aa.Quaternion()).Rotation()
}

// Sub composes the calling AxisAngle with the reverse of the other rotation.
func (aa AxisAngle) Sub(other AxisAngle) AxisAngle {
	other.Angle *= -1
	return aa.Add(other)
}

// AlmostEqual returns true if both the axes and the angles of the two AxisAngles differ by less than eps.
func (aa AxisAngle) AlmostEqual(other AxisAngle, eps float64) bool {
	return aa.Axis.AlmostEqual(other.Axis, eps) && AlmostEqual(aa.Angle, other.Angle, eps)
}

// String returns the AxisAngle in the form "{ axis: { x: <x>, y: <y>, z: <z> }, angle: <angle> }".
func (aa AxisAngle) String() string {
	return "{ axis: " + aa.Axis.String() + ", angle: " + formatFloat(aa.Angle) + " }"
}
