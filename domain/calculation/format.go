package calculation

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FailurePrefix marks a rendered error message.
const FailurePrefix = "Error: "

var printer = message.NewPrinter(language.English)

// FormatResult renders v comma-grouped with four decimal places,
// e.g. 1234.5 becomes "1,234.5000".
func FormatResult(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return printer.Sprintf("%.4f", v)
}

// FormatOperand renders an input value with four decimal places and no
// grouping, matching the form's input fields.
func FormatOperand(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Expression renders "operand1 operator operand2 = result".
func Expression(operand1 float64, op Operation, operand2, result float64) string {
	return fmt.Sprintf("%s %s %s = %s",
		shortFloat(operand1), op.Symbol(), shortFloat(operand2), shortFloat(result))
}

// FailureMessage renders err for display.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	return FailurePrefix + err.Error()
}

// ArgumentHint returns the inline warning shown next to the second input
// before computing: a logarithm argument must be positive.
func ArgumentHint(op Operation, operand2 float64) string {
	if op == OpLogarithm && !(operand2 > 0) {
		return ErrInvalidLogArgument.Error()
	}
	return ""
}

func shortFloat(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "+Inf", true
	case math.IsInf(v, -1):
		return "-Inf", true
	}
	return "", false
}
