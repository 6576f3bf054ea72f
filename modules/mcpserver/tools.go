package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/paichaigo43/project1/domain/calculation"
	"github.com/paichaigo43/project1/modules/calculator"
)

// Tool names
const (
	ToolCalculate  = "calculator.calculate"
	ToolOperations = "calculator.operations"
)

// CalculateTool evaluates a single calculation.
type CalculateTool struct {
	calculator calculator.CalculatorPort
}

// NewCalculateTool creates a new calculate tool
func NewCalculateTool(calc calculator.CalculatorPort) *CalculateTool {
	return &CalculateTool{calculator: calc}
}

// GetTool returns the MCP tool definition
func (t *CalculateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolCalculate,
		mcp.WithDescription("Evaluate operand1 <operation> operand2. For logarithm, operand1 is the base and operand2 the argument."),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("Operation name, symbol or label: add, subtract, multiply, divide, modulo, power, logarithm")),
		mcp.WithNumber("operand1", mcp.Required(), mcp.Description("First number (or logarithm base)")),
		mcp.WithNumber("operand2", mcp.Required(), mcp.Description("Second number (or exponent / logarithm argument)")),
	)
}

// Handle processes the tool request
func (t *CalculateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(req, "operation", "")
	if name == "" {
		return mcp.NewToolResultError("operation parameter is required"), nil
	}
	args := req.GetArguments()
	for _, key := range []string{"operand1", "operand2"} {
		if _, ok := args[key]; !ok {
			return mcp.NewToolResultError(key + " parameter is required"), nil
		}
	}

	op, err := calculation.ParseOperation(name)
	if err != nil {
		return mcp.NewToolResultError(calculation.FailureMessage(err)), nil
	}

	resp, err := t.calculator.Evaluate(ctx, &calculator.EvaluateRequest{
		Operation: op.String(),
		Operand1:  mcp.ParseFloat64(req, "operand1", 0),
		Operand2:  mcp.ParseFloat64(req, "operand2", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Calculator unavailable: %v", err)), nil
	}
	if !resp.Succeeded() {
		return mcp.NewToolResultError(calculation.FailureMessage(resp.Err())), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s (formatted: %s)", resp.Expression, resp.Formatted)), nil
}

// OperationsTool lists the supported operations.
type OperationsTool struct {
	calculator calculator.CalculatorPort
}

// NewOperationsTool creates a new operations tool
func NewOperationsTool(calc calculator.CalculatorPort) *OperationsTool {
	return &OperationsTool{calculator: calc}
}

// GetTool returns the MCP tool definition
func (t *OperationsTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolOperations,
		mcp.WithDescription("List the supported operations with their symbols and labels"),
	)
}

// Handle processes the tool request
func (t *OperationsTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.calculator.ListOperations(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Calculator unavailable: %v", err)), nil
	}

	jsonBytes, err := json.MarshalIndent(resp.Operations, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
