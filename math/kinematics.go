package math

// SignBit reports whether a is non-negative. Zero counts as positive.
func SignBit[T Number](a T) bool {
	return a >= 0
}

// Sign returns +1 for a >= 0 and -1 otherwise, so Sign(0) is +1.
func Sign[T Number](a T) int {
	if SignBit(a) {
		return 1
	}
	return -1
}

// AreTheSameSign is true when either operand is exactly zero or both share
// a sign bit.
func AreTheSameSign[T Number](a, b T) bool {
	hasZero := a == 0 || b == 0
	return hasZero || SignBit(a) == SignBit(b)
}

// ComputeAccel moves by delta but never by more than deltaLimit, keeping the
// direction of delta.
func ComputeAccel[T Number](delta, deltaLimit T) T {
	sign := T(Sign(delta))
	abs := delta * sign
	abs = min(abs, deltaLimit)
	return abs * sign
}

// PathAccel is the distance covered in t under constant acceleration starting
// at initialSpeed.
func PathAccel(initialSpeed, acceleration, t float64) float64 {
	return initialSpeed*t + acceleration*t*t/2
}

// PathAccelDeccel is the distance of an accelerate-then-decelerate move.
// Keep it as the sum of the two segments, the solvers depend on the exact
// evaluation order.
func PathAccelDeccel(initialSpeed, acceleration, tAccel, decceleration, tDeccel float64) float64 {
	return PathAccel(initialSpeed, acceleration, tAccel) + PathAccel(initialSpeed+acceleration*tAccel, -decceleration, tDeccel)
}
