package api

import "github.com/paichaigo43/project1/modules/calculator"

// CalculateRequest is the HTTP request for an evaluation. Operation accepts
// a name ("power"), symbol ("^") or label ("Power (x^y)").
type CalculateRequest struct {
	Operation string   `json:"operation"`
	Operand1  *float64 `json:"operand1"`
	Operand2  *float64 `json:"operand2"`
}

// CalculateResponse is the HTTP response for a successful evaluation.
type CalculateResponse struct {
	ID         string            `json:"id"`
	Operation  string            `json:"operation"`
	Operand1   float64           `json:"operand1"`
	Operand2   float64           `json:"operand2"`
	Result     calculator.Number `json:"result"`
	Formatted  string            `json:"formatted"`
	Expression string            `json:"expression"`
	Cached     bool              `json:"cached"`
}

// OperationsResponse lists the supported operations.
type OperationsResponse struct {
	Operations []calculator.OperationInfo `json:"operations"`
}

// InvalidateResponse reports how many cached results were removed.
type InvalidateResponse struct {
	Operation string `json:"operation,omitempty"`
	Deleted   int    `json:"deleted"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors. Kind is set for calculation
// failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}
