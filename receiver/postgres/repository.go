package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/blkart/senlin/receiver"
)

/* PostgreSQL implementation of receiver.Repository
 * A UNIQUE (project, name) constraint enforces per-project name uniqueness
 * in the database instead of application code; the unique-violation error
 * code maps back to receiver.ErrDuplicateName
 */

const uniqueViolation = "23505"

type Repository struct {
	DB *sql.DB
}

// NewRepository creates a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL repository with a custom pool
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// Create inserts a receiver record
func (r *Repository) Create(ctx context.Context, rec receiver.Receiver) error {
	paramsJSON, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("marshaling params: %w", err)
	}

	query := `
		INSERT INTO receivers (id, name, type, cluster_id, action, actor, params, project, domain, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.DB.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.Type.String(), rec.ClusterID, rec.Action, rec.Actor,
		string(paramsJSON), rec.Project, rec.Domain, rec.User, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("%w: %q", receiver.ErrDuplicateName, rec.Name)
		}
		return fmt.Errorf("%w: inserting receiver: %v", receiver.ErrUnavailable, err)
	}

	return nil
}

// Get fetches a receiver by ID
func (r *Repository) Get(ctx context.Context, id string) (receiver.Receiver, error) {
	query := `
		SELECT id, name, type, cluster_id, action, actor, params, project, domain, user_id, created_at, updated_at
		FROM receivers WHERE id = $1
	`

	var rec receiver.Receiver
	var typeStr, paramsStr string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Name, &typeStr, &rec.ClusterID, &rec.Action, &rec.Actor,
		&paramsStr, &rec.Project, &rec.Domain, &rec.User, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return receiver.Receiver{}, fmt.Errorf("%w: %s", receiver.ErrNotFound, id)
	}
	if err != nil {
		return receiver.Receiver{}, fmt.Errorf("%w: selecting receiver: %v", receiver.ErrUnavailable, err)
	}

	rec.Type = receiver.NewType(typeStr)
	rec.Params = make(map[string]string)
	if paramsStr != "" {
		if err := json.Unmarshal([]byte(paramsStr), &rec.Params); err != nil {
			return receiver.Receiver{}, fmt.Errorf("unmarshaling params: %w", err)
		}
	}

	return rec, nil
}

// List fetches receivers matching the filter, windowed by sort, marker and limit
func (r *Repository) List(ctx context.Context, filter receiver.Filter) ([]receiver.Receiver, error) {
	query := `
		SELECT id, name, type, cluster_id, action, actor, params, project, domain, user_id, created_at, updated_at
		FROM receivers WHERE 1=1
	`
	var args []interface{}
	n := 0
	arg := func(v interface{}) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.Project != "" {
		query += " AND project = " + arg(filter.Project)
	}
	if filter.Name != "" {
		query += " AND name = " + arg(filter.Name)
	}
	if filter.Type != 0 {
		query += " AND type = " + arg(filter.Type.String())
	}
	if filter.ClusterID != "" {
		query += " AND cluster_id = " + arg(filter.ClusterID)
	}
	if filter.Action != "" {
		query += " AND action = " + arg(filter.Action)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting receivers: %v", receiver.ErrUnavailable, err)
	}
	defer rows.Close()

	var matched []receiver.Receiver
	for rows.Next() {
		var rec receiver.Receiver
		var typeStr, paramsStr string
		if err := rows.Scan(
			&rec.ID, &rec.Name, &typeStr, &rec.ClusterID, &rec.Action, &rec.Actor,
			&paramsStr, &rec.Project, &rec.Domain, &rec.User, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning receiver: %w", err)
		}
		rec.Type = receiver.NewType(typeStr)
		rec.Params = make(map[string]string)
		if paramsStr != "" {
			if err := json.Unmarshal([]byte(paramsStr), &rec.Params); err != nil {
				return nil, fmt.Errorf("unmarshaling params: %w", err)
			}
		}
		matched = append(matched, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating receivers: %w", err)
	}

	// Windowing stays in one place for all stores
	return receiver.Paginate(matched, filter.Sort, filter.Marker, filter.Limit), nil
}

// Delete removes a receiver by ID
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM receivers WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting receiver: %v", receiver.ErrUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", receiver.ErrNotFound, id)
	}

	return nil
}

// Close closes the database connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable creates the receivers table (useful for tests)
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS receivers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			cluster_id TEXT NOT NULL,
			action TEXT NOT NULL,
			actor TEXT NOT NULL DEFAULT '',
			params TEXT NOT NULL DEFAULT '{}',
			project TEXT NOT NULL,
			domain TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (project, name)
		)
	`

	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

// DropTable removes the receivers table (useful for tests)
func (r *Repository) DropTable(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS receivers CASCADE"

	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}

	return nil
}
