package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/paichaigo43/project1/domain/calculation"
)

// Service names registered by the calculator module.
const (
	ServiceEvaluate       = "evaluate"
	ServiceListOperations = "list-operations"
)

// EvaluateRequest is the request for a single evaluation. Operation accepts
// the operation name, symbol or label.
type EvaluateRequest struct {
	Operation string  `json:"operation"`
	Operand1  float64 `json:"operand1"`
	Operand2  float64 `json:"operand2"`
}

// EvaluateResponse is the response from an evaluation. Exactly one of
// Formatted and Error is set.
type EvaluateResponse struct {
	ID         string  `json:"id"`
	Operation  string  `json:"operation"`
	Operand1   float64 `json:"operand1"`
	Operand2   float64 `json:"operand2"`
	Result     Number  `json:"result"`
	Formatted  string  `json:"formatted,omitempty"`
	Expression string  `json:"expression,omitempty"`
	Error      string  `json:"error,omitempty"`
	ErrorKind  string  `json:"error_kind,omitempty"`
	Cached     bool    `json:"cached"`
}

// Succeeded reports whether the evaluation produced a result.
func (r *EvaluateResponse) Succeeded() bool {
	return r.ErrorKind == "" && r.Error == ""
}

// Err returns the domain error carried by the response, or nil.
func (r *EvaluateResponse) Err() error {
	if r.Succeeded() {
		return nil
	}
	return calculation.ErrorForKind(calculation.ErrorKind(r.ErrorKind), r.Error)
}

// Number is a float64 whose JSON form also carries NaN and infinities,
// encoded as the strings "NaN", "+Inf" and "-Inf".
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*n = Number(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*n = Number(v)
	return nil
}

// OperationInfo describes one supported operation.
type OperationInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// ListOperationsRequest is the (empty) request for list-operations.
type ListOperationsRequest struct{}

// ListOperationsResponse lists the supported operations in display order.
type ListOperationsResponse struct {
	Operations []OperationInfo `json:"operations"`
}

// CalculatorPort defines the interface for interacting with the calculator
// module. Consumers should use this interface instead of the Module.
type CalculatorPort interface {
	Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error)
	ListOperations(ctx context.Context) (*ListOperationsResponse, error)
}

// ResultCache stores successful results keyed by calculation.
type ResultCache interface {
	GetResult(ctx context.Context, c calculation.Calculation) (float64, bool, error)
	SetResult(ctx context.Context, c calculation.Calculation, result float64) error
}
