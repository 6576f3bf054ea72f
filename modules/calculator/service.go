package calculator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	"github.com/paichaigo43/project1/domain/calculation"
	"github.com/paichaigo43/project1/events"
)

// evaluate handles the calculator.evaluate service request.
// Domain failures are returned in the response, not as Go errors.
func (m *Module) evaluate(ctx context.Context, req EvaluateRequest, _ *mono.Msg) (EvaluateResponse, error) {
	m.evaluations.Add(1)

	resp := EvaluateResponse{
		ID:        uuid.New().String(),
		Operation: req.Operation,
		Operand1:  req.Operand1,
		Operand2:  req.Operand2,
	}

	op, err := calculation.ParseOperation(req.Operation)
	if err != nil {
		setFailure(&resp, err)
		m.publishEvaluated(resp)
		return resp, nil
	}
	resp.Operation = op.String()

	c := calculation.Calculation{
		Operand1:  req.Operand1,
		Operand2:  req.Operand2,
		Operation: op,
	}
	result, cached, err := m.compute(ctx, c)
	if err != nil {
		setFailure(&resp, err)
		m.logger.Debug("Evaluation failed",
			"id", resp.ID,
			"operation", op,
			"kind", resp.ErrorKind)
		m.publishEvaluated(resp)
		return resp, nil
	}

	resp.Result = Number(result)
	resp.Cached = cached
	resp.Formatted = calculation.FormatResult(result)
	resp.Expression = calculation.Expression(c.Operand1, op, c.Operand2, result)

	m.logger.Debug("Evaluation succeeded",
		"id", resp.ID,
		"operation", op,
		"cached", cached)
	m.publishEvaluated(resp)
	return resp, nil
}

// listOperations handles the calculator.list-operations service request.
func (m *Module) listOperations(_ context.Context, _ ListOperationsRequest, _ *mono.Msg) (ListOperationsResponse, error) {
	ops := calculation.Operations()
	resp := ListOperationsResponse{Operations: make([]OperationInfo, 0, len(ops))}
	for _, op := range ops {
		resp.Operations = append(resp.Operations, OperationInfo{
			Name:   op.String(),
			Symbol: op.Symbol(),
			Label:  op.Label(),
		})
	}
	return resp, nil
}

// compute evaluates c, consulting the result cache first when one is set.
// Cache failures are logged and never fail the evaluation.
func (m *Module) compute(ctx context.Context, c calculation.Calculation) (float64, bool, error) {
	if m.cache == nil {
		v, err := c.Evaluate()
		return v, false, err
	}

	v, hit, err := m.cache.GetResult(ctx, c)
	if err != nil {
		m.logger.Warn("Result cache lookup failed", "error", err)
	} else if hit {
		return v, true, nil
	}

	val, err, _ := m.sfGroup.Do(flightKey(c), func() (any, error) {
		v, err := c.Evaluate()
		if err != nil {
			return 0.0, err
		}
		if err := m.cache.SetResult(ctx, c, v); err != nil {
			m.logger.Warn("Failed to cache result", "error", err)
		}
		return v, nil
	})
	if err != nil {
		return 0, false, err
	}
	return val.(float64), false, nil
}

func flightKey(c calculation.Calculation) string {
	return fmt.Sprintf("%s:%x:%x", c.Operation, math.Float64bits(c.Operand1), math.Float64bits(c.Operand2))
}

func setFailure(resp *EvaluateResponse, err error) {
	resp.Result = 0
	resp.Error = err.Error()
	resp.ErrorKind = string(calculation.KindOf(err))
}

// publishEvaluated emits CalculationEvaluated. Publishing is best-effort.
func (m *Module) publishEvaluated(resp EvaluateResponse) {
	if m.eventBus == nil {
		return
	}
	event := events.CalculationEvaluatedEvent{
		CalculationID: resp.ID,
		Operation:     resp.Operation,
		Succeeded:     resp.Succeeded(),
		ErrorKind:     resp.ErrorKind,
		Cached:        resp.Cached,
		EvaluatedAt:   time.Now(),
	}
	if err := events.CalculationEvaluatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish CalculationEvaluated event",
			"id", resp.ID,
			"error", err)
	}
}
