package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_Basics(t *testing.T) {
	m := NewModule(3000, &mockLogger{})

	assert.Equal(t, "api", m.Name())
	assert.Equal(t, []string{"calculator", "stats"}, m.Dependencies())
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestModule_StartRequiresDependencies(t *testing.T) {
	ctx := context.Background()

	m := NewModule(3000, &mockLogger{})
	require.Error(t, m.Start(ctx))

	m.calculator = &mockCalculator{}
	require.Error(t, m.Start(ctx))

	require.NoError(t, m.Stop(ctx))
}

func TestModule_StartStop(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(&mockCalculator{})
	m.port = 0

	require.NoError(t, m.Start(ctx))
	status := m.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, false, status.Details["cache_enabled"])

	require.NoError(t, m.Stop(ctx))
}
