package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the receiver subsystem.
type Metrics struct {
	// ReceiverCounts maps receiver type to the number of registered receivers
	ReceiverCounts map[string]int64 `json:"receiver_counts"`

	// DispatchCounts maps dispatch outcome to its running total
	DispatchCounts map[string]int64 `json:"dispatch_counts"`

	// Throughput represents actions submitted per time window
	Throughput ThroughputMetrics `json:"throughput"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// ThroughputMetrics represents actions submitted over different time windows.
type ThroughputMetrics struct {
	// LastMinute is actions submitted in the last 1 minute
	LastMinute int64 `json:"last_minute"`

	// LastFiveMinutes is actions submitted in the last 5 minutes
	LastFiveMinutes int64 `json:"last_five_minutes"`

	// LastFifteenMinutes is actions submitted in the last 15 minutes
	LastFifteenMinutes int64 `json:"last_fifteen_minutes"`
}

// Collector defines the interface for collecting metrics from the receiver
// subsystem.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetReceiverCounts returns the number of receivers per type
	GetReceiverCounts(ctx context.Context) (map[string]int64, error)

	// GetDispatchCounts returns running dispatch totals by outcome
	GetDispatchCounts(ctx context.Context) (map[string]int64, error)

	// GetThroughput returns actions submitted over time windows
	GetThroughput(ctx context.Context) (ThroughputMetrics, error)
}
