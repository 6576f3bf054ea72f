package stats

import "context"

// Service names for request-reply communication.
const (
	ServiceGetStats = "get-stats"
)

// OperationStats holds the counters of a single operation.
type OperationStats struct {
	Total     uint64            `json:"total"`
	Succeeded uint64            `json:"succeeded"`
	Failed    uint64            `json:"failed"`
	Cached    uint64            `json:"cached"`
	ByKind    map[string]uint64 `json:"by_kind,omitempty"`
}

// GetStatsRequest is the request for the get-stats service.
type GetStatsRequest struct{}

// GetStatsResponse is a snapshot of all evaluation counters.
type GetStatsResponse struct {
	Total      uint64                    `json:"total"`
	Succeeded  uint64                    `json:"succeeded"`
	Failed     uint64                    `json:"failed"`
	Operations map[string]OperationStats `json:"operations"`
}

// StatsPort defines the interface for reading evaluation statistics.
type StatsPort interface {
	GetStats(ctx context.Context) (*GetStatsResponse, error)
}
