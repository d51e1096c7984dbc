package quaternions

import (
	"errors"
	"math"
	"strconv"
)

// DefaultEpsilon is the absolute tolerance used by the approximate comparisons when nothing looser is needed.
const DefaultEpsilon = 1e-12

var (
	// ErrIndexOutOfRange is returned by Vector3.At and Matrix3.At for indices other than 0, 1, or 2.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// AlmostEqual returns true if a and b differ by strictly less than eps.
func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// ToRadians is a helper function to easily convert degrees to radians (which is what the rotation-oriented functions use).
func ToRadians(degrees float64) float64 {
	return math.Pi * degrees / 180
}

// ToDegrees is a helper function to easily convert radians to degrees for human readability.
func ToDegrees(radians float64) float64 {
	return radians / math.Pi * 180
}

func clamp[V float64 | int](value, min, max V) V {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

// Plain decimal; never exponent notation.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
