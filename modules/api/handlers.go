package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/paichaigo43/project1/domain/calculation"
	"github.com/paichaigo43/project1/modules/calculator"
)

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":        "api",
			"port":          m.port,
			"cache_enabled": m.cache != nil,
		},
	})
}

// calculate handles POST /api/v1/calculate.
func (m *Module) calculate(c *fiber.Ctx) error {
	var req CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if req.Operand1 == nil || req.Operand2 == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "operand1 and operand2 are required",
		})
	}

	op, err := calculation.ParseOperation(req.Operation)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Kind:    string(calculation.KindUnknownOperation),
		})
	}

	resp, err := m.calculator.Evaluate(c.Context(), &calculator.EvaluateRequest{
		Operation: op.String(),
		Operand1:  *req.Operand1,
		Operand2:  *req.Operand2,
	})
	if err != nil {
		m.logger.Error("Calculator call failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "service_unavailable",
			Message: "calculator unavailable",
		})
	}

	if !resp.Succeeded() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "calculation_failed",
			Message: resp.Error,
			Kind:    resp.ErrorKind,
		})
	}

	return c.JSON(CalculateResponse{
		ID:         resp.ID,
		Operation:  resp.Operation,
		Operand1:   resp.Operand1,
		Operand2:   resp.Operand2,
		Result:     resp.Result,
		Formatted:  resp.Formatted,
		Expression: resp.Expression,
		Cached:     resp.Cached,
	})
}

// listOperations handles GET /api/v1/operations.
func (m *Module) listOperations(c *fiber.Ctx) error {
	resp, err := m.calculator.ListOperations(c.Context())
	if err != nil {
		m.logger.Error("Calculator call failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "service_unavailable",
			Message: "calculator unavailable",
		})
	}
	return c.JSON(OperationsResponse{Operations: resp.Operations})
}

// getStats handles GET /api/v1/stats.
func (m *Module) getStats(c *fiber.Ctx) error {
	resp, err := m.stats.GetStats(c.Context())
	if err != nil {
		m.logger.Error("Stats call failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "service_unavailable",
			Message: "stats unavailable",
		})
	}
	return c.JSON(resp)
}

// getCacheStats handles GET /api/v1/cache/stats.
func (m *Module) getCacheStats(c *fiber.Ctx) error {
	if m.cache == nil {
		return cacheDisabled(c)
	}
	snapshot, ok := m.cache.CacheStats()
	if !ok {
		return cacheNotReady(c)
	}
	return c.JSON(snapshot)
}

// resetCacheStats handles POST /api/v1/cache/stats/reset.
func (m *Module) resetCacheStats(c *fiber.Ctx) error {
	if m.cache == nil {
		return cacheDisabled(c)
	}
	if !m.cache.ResetCacheStats() {
		return cacheNotReady(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// invalidateCache handles DELETE /api/v1/cache?operation=<op>. Without an
// operation every cached result is removed.
func (m *Module) invalidateCache(c *fiber.Ctx) error {
	if m.cache == nil {
		return cacheDisabled(c)
	}

	var op calculation.Operation
	if raw := c.Query("operation"); raw != "" {
		parsed, err := calculation.ParseOperation(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
				Kind:    string(calculation.KindUnknownOperation),
			})
		}
		op = parsed
	}

	deleted, err := m.cache.InvalidateResults(c.Context(), op)
	if err != nil {
		m.logger.Error("Cache invalidation failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "cache_error",
			Message: "cache invalidation failed",
		})
	}
	return c.JSON(InvalidateResponse{Operation: op.String(), Deleted: deleted})
}

func cacheDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "cache_disabled",
		Message: "result cache is not enabled",
	})
}

func cacheNotReady(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
		Error:   "cache_unavailable",
		Message: "result cache is not ready",
	})
}
