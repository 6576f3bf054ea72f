package calculation

import (
	"fmt"
	"math"
)

// Evaluate applies op to the operands and returns the result, or one of the
// domain errors when a precondition of op is not met. It has no side effects
// and is safe for concurrent use.
//
// For OpLogarithm, operand1 is the base and operand2 the argument.
func Evaluate(operand1, operand2 float64, op Operation) (result float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = 0, computationError(op, fmt.Sprint(r))
		}
	}()

	switch op {
	case OpAdd:
		return operand1 + operand2, nil
	case OpSubtract:
		return operand1 - operand2, nil
	case OpMultiply:
		return operand1 * operand2, nil
	case OpDivide:
		if operand2 == 0 {
			return 0, ErrDivisionByZero
		}
		return operand1 / operand2, nil
	case OpModulo:
		return modulo(operand1, operand2)
	case OpPower:
		return power(operand1, operand2)
	case OpLogarithm:
		return logarithm(operand1, operand2)
	default:
		return 0, ErrUnknownOperation
	}
}

// modulo truncates both operands and returns the remainder with the sign of
// the divisor. math.Mod is exact, so operands of any finite magnitude work.
func modulo(a, b float64) (float64, error) {
	tb, err := truncate(b)
	if err != nil {
		return 0, err
	}
	if tb == 0 {
		return 0, ErrModuloByZero
	}
	ta, err := truncate(a)
	if err != nil {
		return 0, err
	}

	r := math.Mod(ta, tb)
	if r == 0 {
		// math.Mod returns -0 for negative dividends.
		return 0, nil
	}
	if (r < 0) != (tb < 0) {
		r += tb
	}
	return r, nil
}

func truncate(v float64) (float64, error) {
	switch {
	case math.IsNaN(v):
		return 0, computationError(OpModulo, "cannot convert float NaN to integer")
	case math.IsInf(v, 0):
		return 0, computationError(OpModulo, "cannot convert float infinity to integer")
	}
	return math.Trunc(v), nil
}

func power(base, exp float64) (float64, error) {
	// 0 ^ -Inf is +Inf like any other infinite exponent.
	if base == 0 && exp < 0 && !math.IsInf(exp, -1) {
		return 0, computationError(OpPower, "0.0 cannot be raised to a negative power")
	}

	r := math.Pow(base, exp)
	switch {
	case math.IsNaN(r) && !math.IsNaN(base) && !math.IsNaN(exp):
		return 0, computationError(OpPower, "complex result: negative base with fractional exponent")
	case math.IsInf(r, 0) && !math.IsInf(base, 0) && !math.IsInf(exp, 0):
		return 0, computationError(OpPower, "numerical result out of range")
	}
	return r, nil
}

// logarithm returns log_base(arg). The base is validated first.
func logarithm(base, arg float64) (float64, error) {
	if !(base > 0 && base != 1) {
		return 0, ErrInvalidLogBase
	}
	if !(arg > 0) {
		return 0, ErrInvalidLogArgument
	}
	// Log2 is exact for powers of two, so log_2(8) is exactly 3.
	return math.Log2(arg) / math.Log2(base), nil
}
