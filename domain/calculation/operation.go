// Package calculation holds the calculator's domain: the operation
// enumeration, the pure Evaluate function, its error taxonomy and the
// presentation helpers used by the driving adapters.
package calculation

import "strings"

// Operation represents a calculator operation type.
type Operation string

// Supported operations, in display order.
const (
	OpAdd       Operation = "add"
	OpSubtract  Operation = "subtract"
	OpMultiply  Operation = "multiply"
	OpDivide    Operation = "divide"
	OpModulo    Operation = "modulo"
	OpPower     Operation = "power"
	OpLogarithm Operation = "logarithm"
)

var operations = []Operation{
	OpAdd,
	OpSubtract,
	OpMultiply,
	OpDivide,
	OpModulo,
	OpPower,
	OpLogarithm,
}

// Operations returns every supported operation in display order.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Valid reports whether op is one of the supported operations.
func (op Operation) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo, OpPower, OpLogarithm:
		return true
	}
	return false
}

// Symbol returns the operator used in the symbolic rendering.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "%"
	case OpPower:
		return "^"
	case OpLogarithm:
		return "log"
	default:
		return "?"
	}
}

// Label returns the human-readable label shown in the operation selector.
func (op Operation) Label() string {
	switch op {
	case OpAdd:
		return "Addition (+)"
	case OpSubtract:
		return "Subtraction (-)"
	case OpMultiply:
		return "Multiplication (*)"
	case OpDivide:
		return "Division (/)"
	case OpModulo:
		return "Modulo (%)"
	case OpPower:
		return "Power (x^y)"
	case OpLogarithm:
		return "Logarithm (log)"
	default:
		return string(op)
	}
}

func (op Operation) String() string {
	return string(op)
}

// ParseOperation resolves a name, symbol or label to an Operation.
// Matching ignores case and surrounding whitespace.
func ParseOperation(s string) (Operation, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return "", ErrUnknownOperation
	}
	for _, op := range operations {
		if needle == string(op) ||
			needle == op.Symbol() ||
			needle == strings.ToLower(op.Label()) {
			return op, nil
		}
	}
	// "**" and "x^y" are common spellings of the power operator.
	if needle == "**" || needle == "x^y" {
		return OpPower, nil
	}
	return "", ErrUnknownOperation
}

// Calculation is a single request: two operands and the operation to apply.
type Calculation struct {
	Operand1  float64   `json:"operand1"`
	Operand2  float64   `json:"operand2"`
	Operation Operation `json:"operation"`
}

// Evaluate applies the calculation's operation to its operands.
func (c Calculation) Evaluate() (float64, error) {
	return Evaluate(c.Operand1, c.Operand2, c.Operation)
}
