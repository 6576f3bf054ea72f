package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// calculatorAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements CalculatorPort.
type calculatorAdapter struct {
	container mono.ServiceContainer
}

// NewCalculatorAdapter creates a new adapter for calculator services.
// container is the calculator module's ServiceContainer received via
// SetDependencyServiceContainer.
func NewCalculatorAdapter(container mono.ServiceContainer) CalculatorPort {
	if container == nil {
		panic("calculator adapter requires non-nil ServiceContainer")
	}
	return &calculatorAdapter{container: container}
}

// Evaluate calls the evaluate service. A non-nil error means the call itself
// failed; domain failures are reported through EvaluateResponse.Err.
func (a *calculatorAdapter) Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error) {
	var resp EvaluateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceEvaluate,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceEvaluate, err)
	}
	return &resp, nil
}

// ListOperations calls the list-operations service.
func (a *calculatorAdapter) ListOperations(ctx context.Context) (*ListOperationsResponse, error) {
	var resp ListOperationsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListOperations,
		json.Marshal,
		json.Unmarshal,
		&ListOperationsRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceListOperations, err)
	}
	return &resp, nil
}
