package math

import "math"

type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

func Abs[T float64 | float32](val T) float64 {
	return math.Abs(float64(val))
}

// AbsInt is Abs for the integer epoch domain.
func AbsInt[T ~int | ~int32 | ~int64](val T) T {
	if val < 0 {
		return -val
	}
	return val
}
