package receiver

import "context"

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	// Project scopes the listing to one project. Empty means all projects
	// and is only valid for operator-scoped requests; the service enforces
	// that before the store is consulted.
	Project   string
	Name      string
	Type      Type
	ClusterID string
	Action    string

	// Sort is the sort key: "name" or "created_at" (default).
	Sort string
	// Marker is the ID of the last receiver seen on the previous page.
	Marker string
	// Limit caps the page size. Zero means no cap.
	Limit int
}

// Reader provides read operations for receivers
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Get(ctx context.Context, id string) (Receiver, error)
	List(ctx context.Context, filter Filter) ([]Receiver, error)
}

// Writer provides write operations for receivers
type Writer interface {
	/* Create persists a receiver atomically with its credential reference
	 * Name uniqueness is enforced per project; ErrDuplicateName otherwise
	 */
	Create(ctx context.Context, r Receiver) error
	/* Delete removes a receiver record by ID
	 * Returns ErrNotFound if no record exists, so a caller retrying a
	 * partially failed delete can tell the record is already gone
	 */
	Delete(ctx context.Context, id string) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
