package quaternions

import (
	"fmt"
	"math"
)

// Matrix3 represents a 3x3 matrix, stored column-major as three Vector3 columns. Matrix3s are produced from
// rotation Quaternions (see Quaternion.ToMatrix()); C1, C2, and C3 are the images of +X, +Y, and +Z under the rotation.
type Matrix3 struct {
	C1, C2, C3 Vector3
}

// NewMatrix3 returns a new identity Matrix3.
func NewMatrix3() Matrix3 {
	return Matrix3{C1: VecX, C2: VecY, C3: VecZ}
}

// At returns the column at the given index (0, 1, or 2). Any other index returns an error wrapping ErrIndexOutOfRange.
func (matrix Matrix3) At(index int) (Vector3, error) {
	switch index {
	case 0:
		return matrix.C1, nil
	case 1:
		return matrix.C2, nil
	case 2:
		return matrix.C3, nil
	}
	return Vector3{}, fmt.Errorf("%w: matrix3 index %d", ErrIndexOutOfRange, index)
}

// Columns returns the three columns of the Matrix3 in order.
func (matrix Matrix3) Columns() [3]Vector3 {
	return [3]Vector3{matrix.C1, matrix.C2, matrix.C3}
}

// Transposed transposes a Matrix3, switching its rows and columns. For rotation matrices, this is equivalent to inverting it.
func (matrix Matrix3) Transposed() Matrix3 {
	return Matrix3{
		C1: Vector3{matrix.C1.X, matrix.C2.X, matrix.C3.X},
		C2: Vector3{matrix.C1.Y, matrix.C2.Y, matrix.C3.Y},
		C3: Vector3{matrix.C1.Z, matrix.C2.Z, matrix.C3.Z},
	}
}

// MultVec returns the product of the Matrix3 and the given column Vector3.
func (matrix Matrix3) MultVec(vec Vector3) Vector3 {
	return matrix.C1.Scale(vec.X).Add(matrix.C2.Scale(vec.Y)).Add(matrix.C3.Scale(vec.Z))
}

// Mult returns the matrix product matrix·other; as with Quaternion.Mul(), other is applied first.
func (matrix Matrix3) Mult(other Matrix3) Matrix3 {
	return Matrix3{
		C1: matrix.MultVec(other.C1),
		C2: matrix.MultVec(other.C2),
		C3: matrix.MultVec(other.C3),
	}
}

// ToQuaternion returns a unit Quaternion representative of the Matrix3's rotation (assuming it is just a purely rotational Matrix3).
// The sign of the result is arbitrary, since q and -q represent the same rotation.
func (matrix Matrix3) ToQuaternion() Quaternion {

	m00, m10, m20 := matrix.C1.X, matrix.C1.Y, matrix.C1.Z
	m01, m11, m21 := matrix.C2.X, matrix.C2.Y, matrix.C2.Z
	m02, m12, m22 := matrix.C3.X, matrix.C3.Y, matrix.C3.Z

	trace := m00 + m11 + m22

	if trace > 0 {
		s := 2 * math.Sqrt(1+trace)
		return Quaternion{
			W: s / 4,
			X: (m21 - m12) / s,
			Y: (m02 - m20) / s,
			Z: (m10 - m01) / s,
		}
	}

	// Pick the largest diagonal element to keep s well away from zero.
	if m00 > m11 && m00 > m22 {
		s := 2 * math.Sqrt(1+m00-m11-m22)
		return Quaternion{
			W: (m21 - m12) / s,
			X: s / 4,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
		}
	} else if m11 > m22 {
		s := 2 * math.Sqrt(1+m11-m00-m22)
		return Quaternion{
			W: (m02 - m20) / s,
			X: (m01 + m10) / s,
			Y: s / 4,
			Z: (m12 + m21) / s,
		}
	}

	s := 2 * math.Sqrt(1+m22-m00-m11)
	return Quaternion{
		W: (m10 - m01) / s,
		X: (m02 + m20) / s,
		Y: (m12 + m21) / s,
		Z: s / 4,
	}

}

// Equals returns true if all columns of the two Matrix3s are exactly equal.
func (matrix Matrix3) Equals(other Matrix3) bool {
	return matrix.C1.Equals(other.C1) && matrix.C2.Equals(other.C2) && matrix.C3.Equals(other.C3)
}

// AlmostEqual returns true if every element of the two Matrix3s differs by less than eps.
func (matrix Matrix3) AlmostEqual(other Matrix3, eps float64) bool {
	return matrix.C1.AlmostEqual(other.C1, eps) && matrix.C2.AlmostEqual(other.C2, eps) && matrix.C3.AlmostEqual(other.C3, eps)
}

func (matrix Matrix3) String() string {
	return "{ c1: " + matrix.C1.String() + ", c2: " + matrix.C2.String() + ", c3: " + matrix.C3.String() + " }"
}
