package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"

	"github.com/paichaigo43/project1/events"
)

// Module provides calculation services via RequestReplyService.
type Module struct {
	logger    types.Logger
	eventBus  mono.EventBus
	cache     ResultCache
	sfGroup   singleflight.Group // collapses concurrent misses for one key
	startTime time.Time

	evaluations atomic.Uint64
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new calculator module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "calculator"
}

// SetCache enables cache-aside lookups for successful results.
// A nil cache disables caching.
func (m *Module) SetCache(cache ResultCache) {
	m.cache = cache
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CalculationEvaluatedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.calculator.", so
// "evaluate" becomes "services.calculator.evaluate".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceEvaluate, json.Unmarshal, json.Marshal, m.evaluate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceEvaluate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListOperations, json.Unmarshal, json.Marshal, m.listOperations,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListOperations, err)
	}

	m.logger.Info("Registered calculator services",
		"services", []string{ServiceEvaluate, ServiceListOperations})
	return nil
}

// Start initializes the calculator module.
func (m *Module) Start(_ context.Context) error {
	m.startTime = time.Now()
	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, evaluation events will not be published")
	}
	m.logger.Info("Calculator module started", "cache_enabled", m.cache != nil)
	return nil
}

// Stop gracefully stops the calculator module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Calculator module stopped", "evaluations", m.evaluations.Load())
	return nil
}

// Health returns the current health status of the calculator module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.startTime.IsZero() {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"uptime":        time.Since(m.startTime).Round(time.Second).String(),
			"evaluations":   m.evaluations.Load(),
			"cache_enabled": m.cache != nil,
		},
	}
}
