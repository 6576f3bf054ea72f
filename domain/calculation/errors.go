package calculation

import (
	"errors"
	"strings"
)

// Domain errors returned by Evaluate.
var (
	ErrDivisionByZero     = errors.New("division by zero")
	ErrModuloByZero       = errors.New("modulo by zero")
	ErrInvalidLogBase     = errors.New("base must be >0 and ≠1")
	ErrInvalidLogArgument = errors.New("argument must be >0")

	// ErrComputation matches every *ComputationError via errors.Is.
	ErrComputation = errors.New("calculation error")

	// ErrUnknownOperation is returned for tags outside the Operation set.
	ErrUnknownOperation = errors.New("unknown operation")
)

const computationPrefix = "calculation error: "

// ComputationError reports an arithmetic failure that is not one of the
// named precondition violations, such as an overflow or a complex result.
type ComputationError struct {
	Op     Operation
	Reason string
}

func (e *ComputationError) Error() string {
	return computationPrefix + e.Reason
}

// Is makes errors.Is(err, ErrComputation) true for any ComputationError.
func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}

func computationError(op Operation, reason string) error {
	return &ComputationError{Op: op, Reason: reason}
}

// ErrorKind is the stable, transport-safe name of a domain error.
type ErrorKind string

// Error kinds carried in service responses.
const (
	KindNone               ErrorKind = ""
	KindDivisionByZero     ErrorKind = "division_by_zero"
	KindModuloByZero       ErrorKind = "modulo_by_zero"
	KindInvalidLogBase     ErrorKind = "invalid_log_base"
	KindInvalidLogArgument ErrorKind = "invalid_log_argument"
	KindComputation        ErrorKind = "computation_error"
	KindUnknownOperation   ErrorKind = "unknown_operation"
)

// KindOf classifies err. Errors from outside the domain are reported as
// KindComputation.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrModuloByZero):
		return KindModuloByZero
	case errors.Is(err, ErrInvalidLogBase):
		return KindInvalidLogBase
	case errors.Is(err, ErrInvalidLogArgument):
		return KindInvalidLogArgument
	case errors.Is(err, ErrUnknownOperation):
		return KindUnknownOperation
	default:
		return KindComputation
	}
}

// ErrorForKind rebuilds a domain error from its kind and message, so errors
// that crossed a service boundary still satisfy errors.Is.
func ErrorForKind(kind ErrorKind, message string) error {
	switch kind {
	case KindNone:
		return nil
	case KindDivisionByZero:
		return ErrDivisionByZero
	case KindModuloByZero:
		return ErrModuloByZero
	case KindInvalidLogBase:
		return ErrInvalidLogBase
	case KindInvalidLogArgument:
		return ErrInvalidLogArgument
	case KindUnknownOperation:
		return ErrUnknownOperation
	default:
		return &ComputationError{Reason: strings.TrimPrefix(message, computationPrefix)}
	}
}
