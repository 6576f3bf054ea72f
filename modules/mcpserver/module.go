// Package mcpserver exposes the calculator as Model Context Protocol tools
// served over SSE.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/mark3labs/mcp-go/server"

	"github.com/paichaigo43/project1/modules/calculator"
)

const (
	serverName    = "calculator"
	serverVersion = "1.0.0"
)

// Module runs the MCP server.
type Module struct {
	port       int
	logger     types.Logger
	calculator calculator.CalculatorPort
	mcpServer  *server.MCPServer
	sseServer  *server.SSEServer
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new MCP module listening on port.
func NewModule(port int, logger types.Logger) *Module {
	return &Module{
		port:   port,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "mcp"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"calculator"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "calculator" {
		m.calculator = calculator.NewCalculatorAdapter(container)
	}
}

// Start registers the tools and starts the SSE server.
func (m *Module) Start(_ context.Context) error {
	if m.calculator == nil {
		return errors.New("calculator dependency not set")
	}

	m.mcpServer = newMCPServer(m.calculator)

	addr := fmt.Sprintf(":%d", m.port)
	m.sseServer = server.NewSSEServer(m.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://localhost:%d", m.port)),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := m.sseServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("MCP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("MCP server started", "addr", addr, "transport", "sse")
	return nil
}

// Stop shuts down the SSE server.
func (m *Module) Stop(ctx context.Context) error {
	if m.sseServer == nil {
		return nil
	}
	if err := m.sseServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown MCP server: %w", err)
	}
	m.logger.Info("MCP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.sseServer == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port":      m.port,
			"transport": "sse",
		},
	}
}

func newMCPServer(calc calculator.CalculatorPort) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion)

	calculateTool := NewCalculateTool(calc)
	s.AddTool(calculateTool.GetTool(), calculateTool.Handle)

	operationsTool := NewOperationsTool(calc)
	s.AddTool(operationsTool.GetTool(), operationsTool.Handle)

	return s
}
