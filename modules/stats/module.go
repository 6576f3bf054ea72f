// Package stats keeps in-memory counters of calculator evaluations.
// It consumes CalculationEvaluated events and never sees operands or results.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/paichaigo43/project1/events"
)

// Module counts evaluations per operation.
type Module struct {
	operations map[string]*OperationStats
	mu         sync.RWMutex
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new stats module.
func NewModule() *Module {
	return &Module{
		operations: make(map[string]*OperationStats),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "stats"
}

// RegisterEventConsumers subscribes to calculator events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.CalculationEvaluatedV1, m.handleCalculationEvaluated, m); err != nil {
		return fmt.Errorf("failed to register CalculationEvaluated consumer: %w", err)
	}

	log.Printf("[stats] Registered event consumers: CalculationEvaluated")
	return nil
}

// RegisterServices registers the get-stats service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetStats, json.Unmarshal, json.Marshal, m.getStats,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetStats, err)
	}
	return nil
}

func (m *Module) handleCalculationEvaluated(_ context.Context, event events.CalculationEvaluatedEvent, _ *mono.Msg) error {
	m.Record(event)
	return nil
}

func (m *Module) getStats(_ context.Context, _ GetStatsRequest, _ *mono.Msg) (GetStatsResponse, error) {
	return m.Snapshot(), nil
}

// Record adds one evaluation to the counters.
func (m *Module) Record(event events.CalculationEvaluatedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.operations[event.Operation]
	if !ok {
		s = &OperationStats{ByKind: make(map[string]uint64)}
		m.operations[event.Operation] = s
	}

	s.Total++
	if event.Cached {
		s.Cached++
	}
	if event.Succeeded {
		s.Succeeded++
		return
	}
	s.Failed++
	if event.ErrorKind != "" {
		s.ByKind[event.ErrorKind]++
	}
}

// Snapshot returns a deep copy of the current counters.
func (m *Module) Snapshot() GetStatsResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resp := GetStatsResponse{
		Operations: make(map[string]OperationStats, len(m.operations)),
	}
	for name, s := range m.operations {
		cp := *s
		cp.ByKind = make(map[string]uint64, len(s.ByKind))
		for kind, n := range s.ByKind {
			cp.ByKind[kind] = n
		}
		resp.Operations[name] = cp
		resp.Total += s.Total
		resp.Succeeded += s.Succeeded
		resp.Failed += s.Failed
	}
	return resp
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[stats] Module started - listening for calculator events")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	snap := m.Snapshot()
	log.Printf("[stats] Module stopped (evaluations: %d, failed: %d)", snap.Total, snap.Failed)
	return nil
}
