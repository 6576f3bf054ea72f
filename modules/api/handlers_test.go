package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paichaigo43/project1/domain/calculation"
	"github.com/paichaigo43/project1/modules/cache"
	"github.com/paichaigo43/project1/modules/calculator"
	"github.com/paichaigo43/project1/modules/stats"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

// mockCalculator implements calculator.CalculatorPort by evaluating locally.
type mockCalculator struct {
	fail     bool
	requests []calculator.EvaluateRequest
}

func (m *mockCalculator) Evaluate(_ context.Context, req *calculator.EvaluateRequest) (*calculator.EvaluateResponse, error) {
	if m.fail {
		return nil, errors.New("nats: no responders available")
	}
	m.requests = append(m.requests, *req)

	resp := &calculator.EvaluateResponse{
		ID:        "calc-1",
		Operation: req.Operation,
		Operand1:  req.Operand1,
		Operand2:  req.Operand2,
	}
	op, err := calculation.ParseOperation(req.Operation)
	if err == nil {
		var v float64
		v, err = calculation.Evaluate(req.Operand1, req.Operand2, op)
		if err == nil {
			resp.Result = calculator.Number(v)
			resp.Formatted = calculation.FormatResult(v)
			resp.Expression = calculation.Expression(req.Operand1, op, req.Operand2, v)
			return resp, nil
		}
	}
	resp.Error = err.Error()
	resp.ErrorKind = string(calculation.KindOf(err))
	return resp, nil
}

func (m *mockCalculator) ListOperations(_ context.Context) (*calculator.ListOperationsResponse, error) {
	if m.fail {
		return nil, errors.New("nats: no responders available")
	}
	resp := &calculator.ListOperationsResponse{}
	for _, op := range calculation.Operations() {
		resp.Operations = append(resp.Operations, calculator.OperationInfo{
			Name: op.String(), Symbol: op.Symbol(), Label: op.Label(),
		})
	}
	return resp, nil
}

// mockStats implements stats.StatsPort.
type mockStats struct {
	resp *stats.GetStatsResponse
	err  error
}

func (m *mockStats) GetStats(_ context.Context) (*stats.GetStatsResponse, error) {
	return m.resp, m.err
}

// mockCache implements CacheControl.
type mockCache struct {
	ready       bool
	snapshot    cache.StatsSnapshot
	resets      int
	invalidated []calculation.Operation
	invalidErr  error
}

func (m *mockCache) CacheStats() (cache.StatsSnapshot, bool) {
	return m.snapshot, m.ready
}

func (m *mockCache) ResetCacheStats() bool {
	if !m.ready {
		return false
	}
	m.resets++
	return true
}

func (m *mockCache) InvalidateResults(_ context.Context, op calculation.Operation) (int, error) {
	if m.invalidErr != nil {
		return 0, m.invalidErr
	}
	m.invalidated = append(m.invalidated, op)
	return 2, nil
}

func newTestModule(calc *mockCalculator) *Module {
	m := NewModule(3000, &mockLogger{})
	m.calculator = calc
	m.stats = &mockStats{resp: &stats.GetStatsResponse{Total: 3, Succeeded: 2, Failed: 1}}
	return m
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   []string
	}{
		{
			name:           "power",
			body:           `{"operation":"power","operand1":2,"operand2":10}`,
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"result":1024`, `"formatted":"1,024.0000"`, `"expression":"2 ^ 10 = 1024"`},
		},
		{
			name:           "operation by label",
			body:           `{"operation":"Logarithm (log)","operand1":2,"operand2":8}`,
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"operation":"logarithm"`, `"formatted":"3.0000"`},
		},
		{
			name:           "overflow is a result",
			body:           `{"operation":"add","operand1":1e308,"operand2":1e308}`,
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"result":"+Inf"`},
		},
		{
			name:           "division by zero",
			body:           `{"operation":"divide","operand1":5,"operand2":0}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   []string{`"kind":"division_by_zero"`, `"message":"division by zero"`},
		},
		{
			name:           "invalid log base",
			body:           `{"operation":"logarithm","operand1":1,"operand2":8}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   []string{`"kind":"invalid_log_base"`},
		},
		{
			name:           "unknown operation",
			body:           `{"operation":"sqrt","operand1":4,"operand2":0}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"kind":"unknown_operation"`},
		},
		{
			name:           "missing operand",
			body:           `{"operation":"add","operand1":4}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"error":"validation_error"`},
		},
		{
			name:           "malformed body",
			body:           `{"operation":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"error":"invalid_request"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestModule(&mockCalculator{}).newApp()

			status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/v1/calculate", tt.body))

			assert.Equal(t, tt.expectedStatus, status, body)
			for _, want := range tt.expectedBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestCalculate_CalculatorUnavailable(t *testing.T) {
	app := newTestModule(&mockCalculator{fail: true}).newApp()

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/v1/calculate",
		`{"operation":"add","operand1":1,"operand2":2}`))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, "service_unavailable")
}

func TestListOperations(t *testing.T) {
	app := newTestModule(&mockCalculator{}).newApp()

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/operations", nil))
	require.Equal(t, http.StatusOK, status)

	var resp OperationsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Operations, 7)
	assert.Equal(t, "Addition (+)", resp.Operations[0].Label)
	assert.Equal(t, "log", resp.Operations[6].Symbol)
}

func TestGetStats(t *testing.T) {
	m := newTestModule(&mockCalculator{})
	app := m.newApp()

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"total":3`)

	m.stats = &mockStats{err: errors.New("timeout")}
	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestCacheEndpoints_Disabled(t *testing.T) {
	app := newTestModule(&mockCalculator{}).newApp()

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/cache/stats/reset", nil),
		httptest.NewRequest(http.MethodDelete, "/api/v1/cache", nil),
	}
	for _, req := range requests {
		status, body := doRequest(t, app, req)
		assert.Equal(t, http.StatusNotFound, status, req.URL.Path)
		assert.Contains(t, body, "cache_disabled")
	}
}

func TestCacheEndpoints_Enabled(t *testing.T) {
	m := newTestModule(&mockCalculator{})
	mc := &mockCache{ready: true, snapshot: cache.StatsSnapshot{Hits: 3, Misses: 1, HitRate: 75, TotalGets: 4}}
	m.SetCacheControl(mc)
	app := m.newApp()

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"hit_rate":75`)

	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/cache/stats/reset", nil))
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 1, mc.resets)

	status, body = doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/cache?operation=%5E", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"operation":"power"`)
	assert.Contains(t, body, `"deleted":2`)
	assert.Equal(t, []calculation.Operation{calculation.OpPower}, mc.invalidated)

	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/cache?operation=sqrt", nil))
	assert.Equal(t, http.StatusBadRequest, status)

	mc.invalidErr = errors.New("redis down")
	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/cache", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestCacheEndpoints_NotReady(t *testing.T) {
	m := newTestModule(&mockCalculator{})
	m.SetCacheControl(&mockCache{})
	app := m.newApp()

	status, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestHealthHandler(t *testing.T) {
	app := newTestModule(&mockCalculator{}).newApp()

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"healthy"`)
	assert.Contains(t, body, `"cache_enabled":false`)
}
