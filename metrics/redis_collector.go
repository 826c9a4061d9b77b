package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

/* Redis-backed metrics for the receiver subsystem
 * The dispatcher records outcomes through RecordDispatch; the collector
 * reads them back alongside receiver counts scanned from the store keys
 */

const (
	dispatchCountPrefix = "metrics:dispatch:count"  // Counter naming: metrics:dispatch:count:{outcome}
	submittedSetKey     = "metrics:dispatch:events" // Sorted set of submissions scored by unix time
	recordPattern       = "receiver:*"              // Store record keys (receiver:{id})
)

var outcomes = []string{"submitted", "unauthorized", "rejected"}

// RedisCollector implements the Collector interface for Redis-backed metrics.
// It also serves as the dispatcher's outcome recorder.
type RedisCollector struct {
	client *redis.Client
}

// NewRedisCollector creates a new Redis metrics collector
func NewRedisCollector(client *redis.Client) *RedisCollector {
	return &RedisCollector{
		client: client,
	}
}

// RecordDispatch counts one dispatch outcome.
// Submissions also land in a sorted set so throughput windows can be
// computed without scanning store records.
func (c *RedisCollector) RecordDispatch(ctx context.Context, outcome string) {
	c.client.Incr(ctx, fmt.Sprintf("%s:%s", dispatchCountPrefix, outcome))

	if outcome == "submitted" {
		now := time.Now()
		c.client.ZAdd(ctx, submittedSetKey, redis.Z{
			Score:  float64(now.Unix()),
			Member: uuid.New().String(),
		})
		// Entries older than the widest window are dead weight
		cutoff := now.Add(-15 * time.Minute).Unix()
		c.client.ZRemRangeByScore(ctx, submittedSetKey, "0", fmt.Sprintf("%d", cutoff))
	}
}

// Collect gathers all metrics from Redis
func (c *RedisCollector) Collect(ctx context.Context) (Metrics, error) {
	receiverCounts, err := c.GetReceiverCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting receiver counts: %w", err)
	}

	dispatchCounts, err := c.GetDispatchCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting dispatch counts: %w", err)
	}

	throughput, err := c.GetThroughput(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting throughput: %w", err)
	}

	return Metrics{
		ReceiverCounts: receiverCounts,
		DispatchCounts: dispatchCounts,
		Throughput:     throughput,
		Timestamp:      time.Now(),
	}, nil
}

// GetReceiverCounts returns counts of receivers grouped by type
func (c *RedisCollector) GetReceiverCounts(ctx context.Context) (map[string]int64, error) {
	receiverCounts := map[string]int64{
		"webhook": 0,
		"signal":  0,
	}

	// Scan for all receiver:* record keys
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error

		scanKeys, cursor, err = c.client.Scan(ctx, cursor, recordPattern, 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning receiver keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return receiverCounts, nil
	}

	// Use pipeline for efficient batch operations
	pipe := c.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))

	for i, key := range keys {
		cmds[i] = pipe.HGet(ctx, key, "type")
	}

	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	for _, cmd := range cmds {
		recType, err := cmd.Result()
		if err != nil {
			continue
		}
		if _, exists := receiverCounts[recType]; exists {
			receiverCounts[recType]++
		}
	}

	return receiverCounts, nil
}

// GetDispatchCounts returns the running totals of dispatch outcomes
func (c *RedisCollector) GetDispatchCounts(ctx context.Context) (map[string]int64, error) {
	dispatchCounts := make(map[string]int64, len(outcomes))

	for _, outcome := range outcomes {
		key := fmt.Sprintf("%s:%s", dispatchCountPrefix, outcome)
		count, err := c.client.Get(ctx, key).Int64()
		if err == redis.Nil {
			dispatchCounts[outcome] = 0
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading dispatch counter: %w", err)
		}
		dispatchCounts[outcome] = count
	}

	return dispatchCounts, nil
}

// GetThroughput calculates actions submitted over different time windows
func (c *RedisCollector) GetThroughput(ctx context.Context) (ThroughputMetrics, error) {
	now := time.Now()

	count := func(since time.Time) (int64, error) {
		return c.client.ZCount(ctx, submittedSetKey,
			fmt.Sprintf("%d", since.Unix()), "+inf").Result()
	}

	lastMinute, err := count(now.Add(-1 * time.Minute))
	if err != nil {
		return ThroughputMetrics{}, fmt.Errorf("counting last minute: %w", err)
	}
	lastFiveMinutes, err := count(now.Add(-5 * time.Minute))
	if err != nil {
		return ThroughputMetrics{}, fmt.Errorf("counting last five minutes: %w", err)
	}
	lastFifteenMinutes, err := count(now.Add(-15 * time.Minute))
	if err != nil {
		return ThroughputMetrics{}, fmt.Errorf("counting last fifteen minutes: %w", err)
	}

	return ThroughputMetrics{
		LastMinute:         lastMinute,
		LastFiveMinutes:    lastFiveMinutes,
		LastFifteenMinutes: lastFifteenMinutes,
	}, nil
}
