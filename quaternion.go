package quaternions

import (
	"math"
)

// Quaternion represents the hypercomplex number W + X·i + Y·j + Z·k. A Quaternion with a W of 0 embeds a 3D vector
// (a "pure" Quaternion); a Quaternion of unit length represents a rotation. Neither convention is enforced by the type.
// Like Vector3, Quaternions are values, and every operation returns a new Quaternion.
type Quaternion struct {
	W, X, Y, Z float64
}

// NewQuaternion returns a new Quaternion. Note that the scalar (real) part comes first.
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{W: w, X: x, Y: y, Z: z}
}

// IdentityQuaternion returns the Quaternion representing no rotation, {1, 0, 0, 0}.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromVector embeds the given Vector3 into a pure Quaternion, {0, v.X, v.Y, v.Z}.
func QuaternionFromVector(v Vector3) Quaternion {
	return Quaternion{W: 0, X: v.X, Y: v.Y, Z: v.Z}
}

// QuaternionFromRotation returns the rotation Quaternion for the given AxisAngle. The axis is expected to already be
// of unit length; it isn't normalized here, so a non-unit axis produces a Quaternion that Rotated() will refuse.
// Use NewAxisAngle() to build an AxisAngle with a normalized axis.
func QuaternionFromRotation(aa AxisAngle) Quaternion {
	s := math.Sin(aa.Angle / 2)
	return Quaternion{
		W: math.Cos(aa.Angle / 2),
		X: aa.Axis.X * s,
		Y: aa.Axis.Y * s,
		Z: aa.Axis.Z * s,
	}
}

// Add returns the component-wise sum of the two Quaternions.
func (quat Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion{quat.W + other.W, quat.X + other.X, quat.Y + other.Y, quat.Z + other.Z}
}

// Sub returns the component-wise difference of the two Quaternions.
func (quat Quaternion) Sub(other Quaternion) Quaternion {
	return Quaternion{quat.W - other.W, quat.X - other.X, quat.Y - other.Y, quat.Z - other.Z}
}

// AddScalar adds the real number s (the Quaternion {s, 0, 0, 0}) to the Quaternion.
func (quat Quaternion) AddScalar(s float64) Quaternion {
	return quat.Add(Quaternion{W: s})
}

// Mul returns the Hamilton product quat·other. The product is associative but not commutative; when both are rotations,
// the result applies other first and quat second.
func (quat Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: quat.W*other.W - quat.X*other.X - quat.Y*other.Y - quat.Z*other.Z,
		X: quat.W*other.X + quat.X*other.W + quat.Y*other.Z - quat.Z*other.Y,
		Y: quat.W*other.Y - quat.X*other.Z + quat.Y*other.W + quat.Z*other.X,
		Z: quat.W*other.Z + quat.X*other.Y - quat.Y*other.X + quat.Z*other.W,
	}
}

// Scale multiplies every component of the Quaternion by the given scalar.
func (quat Quaternion) Scale(scalar float64) Quaternion {
	return Quaternion{quat.W * scalar, quat.X * scalar, quat.Y * scalar, quat.Z * scalar}
}

// Divide divides every component of the Quaternion by the given scalar.
func (quat Quaternion) Divide(scalar float64) Quaternion {
	return Quaternion{quat.W / scalar, quat.X / scalar, quat.Y / scalar, quat.Z / scalar}
}

// Conjugated returns the conjugate of the Quaternion, {W, -X, -Y, -Z}.
func (quat Quaternion) Conjugated() Quaternion {
	return Quaternion{quat.W, -quat.X, -quat.Y, -quat.Z}
}

// Neg returns the Quaternion with every component negated.
func (quat Quaternion) Neg() Quaternion {
	return Quaternion{-quat.W, -quat.X, -quat.Y, -quat.Z}
}

// Cross returns the cross product of the vector parts of both Quaternions as a pure Quaternion. This is not the
// Hamilton product; see Mul() for that.
func (quat Quaternion) Cross(other Quaternion) Quaternion {
	return QuaternionFromVector(quat.Vector().Cross(other.Vector()))
}

// Dot returns the Euclidean inner product of the two Quaternions over all four components.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.W*other.W + quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z
}

// Norm returns the squared length of the Quaternion, quat.Dot(quat).
func (quat Quaternion) Norm() float64 {
	return quat.Dot(quat)
}

// Length returns the magnitude of the Quaternion.
func (quat Quaternion) Length() float64 {
	return math.Sqrt(quat.Norm())
}

// Normalized returns the Quaternion scaled to unit length.
// A zero Quaternion is not guarded against; its components come back as NaN.
func (quat Quaternion) Normalized() Quaternion {
	return quat.Divide(quat.Length())
}

// Inverted returns the multiplicative inverse of the Quaternion, its conjugate divided by its squared length.
// For a unit Quaternion this is the conjugate. A zero Quaternion is not guarded against.
func (quat Quaternion) Inverted() Quaternion {
	return quat.Conjugated().Divide(quat.W*quat.W + quat.X*quat.X + quat.Y*quat.Y + quat.Z*quat.Z)
}

// Vector returns the vector (imaginary) part of the Quaternion.
func (quat Quaternion) Vector() Vector3 {
	return Vector3{quat.X, quat.Y, quat.Z}
}

// Scalar returns the scalar (real) part of the Quaternion.
func (quat Quaternion) Scalar() float64 {
	return quat.W
}

// IsUnit returns true if the Quaternion's length is within DefaultEpsilon of 1; only such Quaternions are
// accepted as rotations by Rotated().
func (quat Quaternion) IsUnit() bool {
	return AlmostEqual(quat.Length(), 1, DefaultEpsilon)
}

// Rotation returns the AxisAngle the (unit) Quaternion represents. For a Quaternion whose rotation is (within
// DefaultEpsilon) no rotation at all, the axis is undefined; Rotation then returns a zero axis and a zero angle.
func (quat Quaternion) Rotation() AxisAngle {

	w := clamp(quat.W, -1, 1)

	divisor := math.Sqrt(1 - w*w)

	if divisor < DefaultEpsilon {
		return AxisAngle{}
	}

	return AxisAngle{
		Axis:  Vector3{quat.X / divisor, quat.Y / divisor, quat.Z / divisor},
		Angle: 2 * math.Acos(w),
	}

}

// Rotated rotates the calling Quaternion (usually a pure Quaternion made with QuaternionFromVector) by the rotation
// Quaternion r, computing r · quat · conjugate(r).
// If r isn't of unit length (see IsUnit()), no rotation happens, and Rotated returns false.
func (quat Quaternion) Rotated(r Quaternion) (Quaternion, bool) {
	if !r.IsUnit() {
		return Quaternion{}, false
	}
	return r.Mul(quat).Mul(r.Conjugated()), true
}

// RotateVector rotates the given Vector3 by the calling rotation Quaternion, returning the rotated copy. It returns
// false if the Quaternion isn't of unit length.
func (quat Quaternion) RotateVector(v Vector3) (Vector3, bool) {
	rotated, ok := QuaternionFromVector(v).Rotated(quat)
	if !ok {
		return Vector3{}, false
	}
	return rotated.Vector(), true
}

// PolarDirection returns the unit pure Quaternion pointing along the Quaternion's imaginary part, as used in the
// polar form quat = |quat| · (cos(angle) + direction · sin(angle)).
func (quat Quaternion) PolarDirection() Quaternion {
	diff := quat.Sub(quat.Conjugated())
	length := diff.Length()
	return Quaternion{0, diff.X / length, diff.Y / length, diff.Z / length}
}

// PolarAngle returns the angle of the Quaternion's polar form; see PolarDirection().
func (quat Quaternion) PolarAngle() float64 {
	scalar := quat.Add(quat.Conjugated()).Scalar()
	return math.Acos(scalar / (2 * quat.Length()))
}

// ToMatrix returns the column-major 3x3 rotation matrix for the (unit) Quaternion.
func (quat Quaternion) ToMatrix() Matrix3 {

	w, x, y, z := quat.W, quat.X, quat.Y, quat.Z

	return Matrix3{
		C1: Vector3{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w)},
		C2: Vector3{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w)},
		C3: Vector3{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y)},
	}

}

// Slerp spherically interpolates between the calling Quaternion and the other provided, by the percentage given
// (0 returns the calling Quaternion, 1 returns other). Both Quaternions are expected to be unit rotations; the
// interpolation takes the shorter path.
func (quat Quaternion) Slerp(other Quaternion, percent float64) Quaternion {

	if percent <= 0 {
		return quat
	} else if percent >= 1 {
		return other
	}

	cosHalfTheta := quat.Dot(other)

	// q and -q are the same rotation; flip to interpolate the short way around.
	if cosHalfTheta < 0 {
		other = other.Neg()
		cosHalfTheta = -cosHalfTheta
	}

	// Nearly parallel; sin(halfTheta) is too small to divide by.
	if cosHalfTheta > 1-1e-6 {
		return quat.Scale(1 - percent).Add(other.Scale(percent)).Normalized()
	}

	halfTheta := math.Acos(cosHalfTheta)
	sinHalfTheta := math.Sqrt(1 - cosHalfTheta*cosHalfTheta)

	ratioA := math.Sin((1-percent)*halfTheta) / sinHalfTheta
	ratioB := math.Sin(percent*halfTheta) / sinHalfTheta

	return quat.Scale(ratioA).Add(other.Scale(ratioB))

}

// Equals returns true if the two Quaternions are exactly equal in all components.
func (quat Quaternion) Equals(other Quaternion) bool {
	return quat.W == other.W && quat.X == other.X && quat.Y == other.Y && quat.Z == other.Z
}

// AlmostEqual returns true if every component of the two Quaternions differs by less than eps.
func (quat Quaternion) AlmostEqual(other Quaternion, eps float64) bool {
	return AlmostEqual(quat.W, other.W, eps) &&
		AlmostEqual(quat.X, other.X, eps) &&
		AlmostEqual(quat.Y, other.Y, eps) &&
		AlmostEqual(quat.Z, other.Z, eps)
}

// String returns the Quaternion in the form "{ w: <w>, x: <x>, y: <y>, z: <z> }".
func (quat Quaternion) String() string {
	return "{ w: " + formatFloat(quat.W) + ", x: " + formatFloat(quat.X) + ", y: " + formatFloat(quat.Y) + ", z: " + formatFloat(quat.Z) + " }"
}
