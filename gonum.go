package quaternions

import gonumquat "gonum.org/v1/gonum/num/quat"

// ToGonum returns the Quaternion as a gonum quat.Number, for handing off to gonum's quaternion functions.
func (quat Quaternion) ToGonum() gonumquat.Number {
	return gonumquat.Number{Real: quat.W, Imag: quat.X, Jmag: quat.Y, Kmag: quat.Z}
}

// QuaternionFromGonum converts a gonum quat.Number into a Quaternion.
func QuaternionFromGonum(n gonumquat.Number) Quaternion {
	return Quaternion{W: n.Real, X: n.Imag, Y: n.Jmag, Z: n.Kmag}
}
