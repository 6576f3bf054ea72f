// Package api serves the calculator form and its JSON API over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/paichaigo43/project1/domain/calculation"
	"github.com/paichaigo43/project1/modules/cache"
	"github.com/paichaigo43/project1/modules/calculator"
	"github.com/paichaigo43/project1/modules/stats"
)

// CacheControl exposes the result cache to the HTTP layer.
type CacheControl interface {
	CacheStats() (cache.StatsSnapshot, bool)
	ResetCacheStats() bool
	InvalidateResults(ctx context.Context, op calculation.Operation) (int, error)
}

// Module is the driving adapter that exposes the calculator over HTTP.
type Module struct {
	app        *fiber.App
	port       int
	logger     types.Logger
	calculator calculator.CalculatorPort
	stats      stats.StatsPort
	cache      CacheControl
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new API module listening on port.
func NewModule(port int, logger types.Logger) *Module {
	return &Module{
		port:   port,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"calculator", "stats"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "calculator":
		m.calculator = calculator.NewCalculatorAdapter(container)
	case "stats":
		m.stats = stats.NewStatsAdapter(container)
	}
}

// SetCacheControl enables the cache endpoints. Without it they respond 404.
func (m *Module) SetCacheControl(c CacheControl) {
	m.cache = c
}

// Start builds the Fiber app and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.calculator == nil {
		return errors.New("calculator dependency not set")
	}
	if m.stats == nil {
		return errors.New("stats dependency not set")
	}

	m.app = m.newApp()

	addr := fmt.Sprintf(":%d", m.port)
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	// Catch immediate startup errors such as a port already in use.
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server...")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port":          m.port,
			"cache_enabled": m.cache != nil,
		},
	}
}

// newApp creates the Fiber app with middleware and routes.
func (m *Module) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Calculator",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	m.setupRoutes(app)
	return app
}

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	// Form
	app.Get("/", m.showForm)
	app.Post("/", m.submitForm)

	api := app.Group("/api/v1")
	api.Post("/calculate", m.calculate)
	api.Get("/operations", m.listOperations)
	api.Get("/stats", m.getStats)

	cacheGroup := api.Group("/cache")
	cacheGroup.Get("/stats", m.getCacheStats)
	cacheGroup.Post("/stats/reset", m.resetCacheStats)
	cacheGroup.Delete("/", m.invalidateCache)
}

// errorHandler handles errors from Fiber routes.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	m.logger.Error("HTTP error", "code", code, "message", message, "error", err)

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
