package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/paichaigo43/project1/domain/calculation"
	"github.com/paichaigo43/project1/modules/calculator"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const defaultOperand = "0.0000"

var errInvalidNumber = errors.New("must be a finite number")

type operationOption struct {
	Name     string
	Label    string
	Selected bool
}

type pageResult struct {
	Label      string
	Expression string
	Formatted  string
	Cached     bool
}

// pageData is the view model of the calculator form.
type pageData struct {
	Operand1   string
	Operand2   string
	Operations []operationOption
	Hint       string
	Invalid    string
	Result     *pageResult
	Error      string
}

func newPageData(operand1, operand2 string, selected calculation.Operation) pageData {
	ops := calculation.Operations()
	options := make([]operationOption, 0, len(ops))
	for _, op := range ops {
		options = append(options, operationOption{
			Name:     op.String(),
			Label:    op.Label(),
			Selected: op == selected,
		})
	}
	return pageData{
		Operand1:   operand1,
		Operand2:   operand2,
		Operations: options,
	}
}

// showForm handles GET /.
func (m *Module) showForm(c *fiber.Ctx) error {
	data := newPageData(defaultOperand, defaultOperand, calculation.OpAdd)
	return renderPage(c, fiber.StatusOK, data)
}

// submitForm handles POST /: evaluates the submitted form and renders the
// result or failure block below it.
func (m *Module) submitForm(c *fiber.Ctx) error {
	raw1 := c.FormValue("operand1")
	raw2 := c.FormValue("operand2")

	op, err := calculation.ParseOperation(c.FormValue("operation"))
	if err != nil {
		data := newPageData(raw1, raw2, calculation.OpAdd)
		data.Invalid = "Operation: " + err.Error()
		return renderPage(c, fiber.StatusBadRequest, data)
	}

	data := newPageData(raw1, raw2, op)

	a, err := parseOperand(raw1)
	if err != nil {
		data.Invalid = "First number " + err.Error()
		return renderPage(c, fiber.StatusBadRequest, data)
	}
	b, err := parseOperand(raw2)
	if err != nil {
		data.Invalid = "Second number " + err.Error()
		return renderPage(c, fiber.StatusBadRequest, data)
	}

	data.Operand1 = calculation.FormatOperand(a)
	data.Operand2 = calculation.FormatOperand(b)
	data.Hint = calculation.ArgumentHint(op, b)

	resp, err := m.calculator.Evaluate(c.Context(), &calculator.EvaluateRequest{
		Operation: op.String(),
		Operand1:  a,
		Operand2:  b,
	})
	if err != nil {
		m.logger.Error("Calculator call failed", "error", err)
		data.Error = calculation.FailurePrefix + "calculator unavailable"
		return renderPage(c, fiber.StatusServiceUnavailable, data)
	}

	if !resp.Succeeded() {
		data.Error = calculation.FailureMessage(resp.Err())
		return renderPage(c, fiber.StatusOK, data)
	}

	data.Result = &pageResult{
		Label:      op.Label(),
		Expression: resp.Expression,
		Formatted:  resp.Formatted,
		Cached:     resp.Cached,
	}
	return renderPage(c, fiber.StatusOK, data)
}

// parseOperand parses a form number. An empty field is zero.
func parseOperand(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errInvalidNumber
	}
	return v, nil
}

func renderPage(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
