package quaternions

import (
	"fmt"
	"math"
)

// VecX represents a unit vector pointing along +X.
var VecX = NewVector3(1, 0, 0)

// VecY represents a unit vector pointing along +Y.
var VecY = NewVector3(0, 1, 0)

// VecZ represents a unit vector pointing along +Z.
var VecZ = NewVector3(0, 0, 1)

// NormalizedEpsilon is the tolerance IsNormalized allows between a Vector3's squared length and 1.
const NormalizedEpsilon = 1e-6

// Vector3 represents a 3D Vector. Vector3s are values; every function that would modify the calling Vector3
// returns a modified copy instead, meaning you can do method-chaining easily.
type Vector3 struct {
	X float64 // The X (1st) component of the Vector3
	Y float64 // The Y (2nd) component of the Vector3
	Z float64 // The Z (3rd) component of the Vector3
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns a copy of the calling Vector3, added together with the other Vector3 provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Cross returns a new Vector3, indicating the right-handed cross product of the calling Vector3 and the provided other Vector3.
// The result is zero for parallel inputs.
func (vec Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: vec.Y*other.Z - vec.Z*other.Y,
		Y: vec.Z*other.X - vec.X*other.Z,
		Z: vec.X*other.Y - vec.Y*other.X,
	}
}

// Neg returns a copy of the Vector3 with every component negated.
func (vec Vector3) Neg() Vector3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Norm returns the squared length of the Vector3; this is faster than Length() as it avoids using math.Sqrt().
func (vec Vector3) Norm() float64 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// Length returns the length of the Vector3.
func (vec Vector3) Length() float64 {
	return math.Sqrt(vec.Norm())
}

// IsNormalized returns true if the Vector3's squared length is within NormalizedEpsilon of 1.
func (vec Vector3) IsNormalized() bool {
	return AlmostEqual(vec.Norm(), 1, NormalizedEpsilon)
}

// Normalized returns a copy of the Vector3 set to be of unit length. A Vector3 that is already normalized
// is returned untouched.
// A zero-length Vector3 is not guarded against; its components come back as NaN.
func (vec Vector3) Normalized() Vector3 {
	if vec.IsNormalized() {
		return vec
	}
	l := vec.Length()
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Distance returns the distance between the calling Vector3 and the other one provided.
func (vec Vector3) Distance(other Vector3) float64 {
	return vec.Sub(other).Length()
}

// Angle returns the angle in radians between the calling Vector3 and the provided other Vector3.
func (vec Vector3) Angle(other Vector3) float64 {
	cos := vec.Dot(other) / (vec.Length() * other.Length())
	return math.Acos(clamp(cos, -1, 1))
}

// Scale scales a Vector3 by the given scalar.
func (vec Vector3) Scale(scalar float64) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Divide divides a Vector3 by the given scalar.
func (vec Vector3) Divide(scalar float64) Vector3 {
	vec.X /= scalar
	vec.Y /= scalar
	vec.Z /= scalar
	return vec
}

// Dot returns the dot product of a Vector3 and another Vector3.
func (vec Vector3) Dot(other Vector3) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// At returns the component at the given index (0 for X, 1 for Y, 2 for Z). Any other index returns
// an error wrapping ErrIndexOutOfRange.
func (vec Vector3) At(index int) (float64, error) {
	switch index {
	case 0:
		return vec.X, nil
	case 1:
		return vec.Y, nil
	case 2:
		return vec.Z, nil
	}
	return 0, fmt.Errorf("%w: vector3 index %d", ErrIndexOutOfRange, index)
}

// Floats returns a [3]float64 array consisting of the Vector3's contents.
func (vec Vector3) Floats() [3]float64 {
	return [3]float64{vec.X, vec.Y, vec.Z}
}

// Equals returns true if the two Vector3s are exactly equal in all components.
func (vec Vector3) Equals(other Vector3) bool {
	return vec.X == other.X && vec.Y == other.Y && vec.Z == other.Z
}

// AlmostEqual returns true if every component of the two Vector3s differs by less than eps.
// DefaultEpsilon is the tolerance to reach for when there's no better one.
func (vec Vector3) AlmostEqual(other Vector3, eps float64) bool {
	return AlmostEqual(vec.X, other.X, eps) &&
		AlmostEqual(vec.Y, other.Y, eps) &&
		AlmostEqual(vec.Z, other.Z, eps)
}

// IsZero returns true if the values in the Vector3 are extremely close to 0.
func (vec Vector3) IsZero() bool {
	return vec.AlmostEqual(Vector3{}, 1e-8)
}

// String returns the Vector3 in the form "{ x: <x>, y: <y>, z: <z> }".
func (vec Vector3) String() string {
	return "{ x: " + formatFloat(vec.X) + ", y: " + formatFloat(vec.Y) + ", z: " + formatFloat(vec.Z) + " }"
}
