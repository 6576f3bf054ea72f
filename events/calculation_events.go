package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CalculationEvaluatedEvent is emitted after every evaluation, successful or
// not. It carries the outcome only; operands and results are not included.
type CalculationEvaluatedEvent struct {
	CalculationID string    `json:"calculation_id"`
	Operation     string    `json:"operation"`
	Succeeded     bool      `json:"succeeded"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	Cached        bool      `json:"cached"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
}

// CalculationEvaluatedV1 is the typed event definition for evaluations.
// Subject: events.calculator.v1.calculation-evaluated
var CalculationEvaluatedV1 = helper.EventDefinition[CalculationEvaluatedEvent](
	"calculator", "CalculationEvaluated", "v1",
)
