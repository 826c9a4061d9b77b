package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blkart/senlin/receiver"
)

/* Redis implementation of receiver.Repository
 * Uses a Redis Hash per receiver record, Sets as project and global
 * indexes, and a per-project name Hash whose HSETNX write enforces name
 * uniqueness atomically
 */

const (
	recordPrefix = "receiver"          // Record naming: receiver:{receiver_id}
	projectIndex = "receivers:project" // Index naming: receivers:project:{project}
	globalIndex  = "receivers:all"     // Single set of all receiver IDs
	nameIndex    = "receivers:names"   // Name uniqueness: receivers:names:{project} -> {name: id}
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

// Create persists a receiver record and its indexes.
// The name reservation happens first; losing it means the name is taken.
func (r *Repository) Create(ctx context.Context, rec receiver.Receiver) error {
	nameKey := fmt.Sprintf("%s:%s", nameIndex, rec.Project)

	reserved, err := r.client.HSetNX(ctx, nameKey, rec.Name, rec.ID).Result()
	if err != nil {
		return fmt.Errorf("%w: reserving name: %v", receiver.ErrUnavailable, err)
	}
	if !reserved {
		return fmt.Errorf("%w: %q", receiver.ErrDuplicateName, rec.Name)
	}

	paramsJSON, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("marshaling params: %w", err)
	}

	recordKey := fmt.Sprintf("%s:%s", recordPrefix, rec.ID)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, recordKey, map[string]interface{}{
		"id":         rec.ID,
		"name":       rec.Name,
		"type":       rec.Type.String(),
		"cluster_id": rec.ClusterID,
		"action":     rec.Action,
		"actor":      rec.Actor,
		"params":     string(paramsJSON),
		"project":    rec.Project,
		"domain":     rec.Domain,
		"user":       rec.User,
		"created_at": rec.CreatedAt.Unix(),
		"updated_at": rec.UpdatedAt.Unix(),
	})
	pipe.SAdd(ctx, fmt.Sprintf("%s:%s", projectIndex, rec.Project), rec.ID)
	pipe.SAdd(ctx, globalIndex, rec.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		// Release the reservation so the name is not stranded
		r.client.HDel(ctx, nameKey, rec.Name)
		return fmt.Errorf("%w: storing receiver: %v", receiver.ErrUnavailable, err)
	}

	return nil
}

// Get retrieves a receiver by ID from its Redis hash
func (r *Repository) Get(ctx context.Context, id string) (receiver.Receiver, error) {
	recordKey := fmt.Sprintf("%s:%s", recordPrefix, id)

	data, err := r.client.HGetAll(ctx, recordKey).Result()
	if err != nil {
		return receiver.Receiver{}, fmt.Errorf("%w: getting receiver: %v", receiver.ErrUnavailable, err)
	}
	if len(data) == 0 {
		return receiver.Receiver{}, fmt.Errorf("%w: %s", receiver.ErrNotFound, id)
	}

	params := make(map[string]string)
	if paramsStr, ok := data["params"]; ok && paramsStr != "" {
		if err := json.Unmarshal([]byte(paramsStr), &params); err != nil {
			return receiver.Receiver{}, fmt.Errorf("unmarshaling params: %w", err)
		}
	}

	rec := receiver.Receiver{
		ID:        data["id"],
		Name:      data["name"],
		Type:      receiver.NewType(data["type"]),
		ClusterID: data["cluster_id"],
		Action:    data["action"],
		Actor:     data["actor"],
		Params:    params,
		Project:   data["project"],
		Domain:    data["domain"],
		User:      data["user"],
		CreatedAt: time.Unix(parseInt64(data["created_at"]), 0).UTC(),
		UpdatedAt: time.Unix(parseInt64(data["updated_at"]), 0).UTC(),
	}

	return rec, nil
}

// List retrieves receivers matching the filter, windowed by sort, marker
// and limit
func (r *Repository) List(ctx context.Context, filter receiver.Filter) ([]receiver.Receiver, error) {
	indexKey := globalIndex
	if filter.Project != "" {
		indexKey = fmt.Sprintf("%s:%s", projectIndex, filter.Project)
	}

	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: reading index: %v", receiver.ErrUnavailable, err)
	}

	matched := make([]receiver.Receiver, 0, len(ids))
	for _, id := range ids {
		rec, err := r.Get(ctx, id)
		if err != nil {
			// Index entries can outlive their record during a racing delete
			continue
		}
		if receiver.MatchesFilter(rec, filter) {
			matched = append(matched, rec)
		}
	}

	return receiver.Paginate(matched, filter.Sort, filter.Marker, filter.Limit), nil
}

// Delete removes a receiver record and its index entries
func (r *Repository) Delete(ctx context.Context, id string) error {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	recordKey := fmt.Sprintf("%s:%s", recordPrefix, id)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, recordKey)
	pipe.SRem(ctx, fmt.Sprintf("%s:%s", projectIndex, rec.Project), id)
	pipe.SRem(ctx, globalIndex, id)
	pipe.HDel(ctx, fmt.Sprintf("%s:%s", nameIndex, rec.Project), rec.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: deleting receiver: %v", receiver.ErrUnavailable, err)
	}

	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

func parseInt64(s string) int64 {
	var result int64
	fmt.Sscanf(s, "%d", &result)
	return result
}
