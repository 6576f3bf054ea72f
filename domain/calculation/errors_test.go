package calculation

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, KindNone},
		{ErrDivisionByZero, KindDivisionByZero},
		{ErrModuloByZero, KindModuloByZero},
		{ErrInvalidLogBase, KindInvalidLogBase},
		{ErrInvalidLogArgument, KindInvalidLogArgument},
		{ErrUnknownOperation, KindUnknownOperation},
		{&ComputationError{Op: OpPower, Reason: "numerical result out of range"}, KindComputation},
		{fmt.Errorf("wrapped: %w", ErrDivisionByZero), KindDivisionByZero},
		{errors.New("anything else"), KindComputation},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorForKind(t *testing.T) {
	for _, sentinel := range []error{
		ErrDivisionByZero,
		ErrModuloByZero,
		ErrInvalidLogBase,
		ErrInvalidLogArgument,
		ErrUnknownOperation,
	} {
		got := ErrorForKind(KindOf(sentinel), sentinel.Error())
		if !errors.Is(got, sentinel) {
			t.Errorf("ErrorForKind(%q) = %v, want %v", KindOf(sentinel), got, sentinel)
		}
	}

	if err := ErrorForKind(KindNone, ""); err != nil {
		t.Errorf("ErrorForKind(KindNone) = %v, want nil", err)
	}

	original := &ComputationError{Op: OpPower, Reason: "numerical result out of range"}
	got := ErrorForKind(KindComputation, original.Error())
	if !errors.Is(got, ErrComputation) {
		t.Fatalf("ErrorForKind(KindComputation) = %v, want ErrComputation", got)
	}
	if got.Error() != original.Error() {
		t.Errorf("rebuilt message = %q, want %q", got.Error(), original.Error())
	}
}
