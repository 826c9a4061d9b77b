package receiver

import "time"

/* Receiver represents a persistent binding between an external trigger
 * and a predefined action on one cluster
 * Uses value semantics as it represents data, not behavior
 */
type Receiver struct {
	ID        string
	Name      string
	Type      Type
	ClusterID string
	Action    string
	// Actor holds the delegated trust handle for webhook receivers.
	// Signal receivers authenticate at invocation time, so it may be empty.
	Actor     string
	Params    map[string]string
	Project   string
	Domain    string
	User      string
	CreatedAt time.Time
	UpdatedAt time.Time

	/* Channel is derived from the receiver ID on every read and is never
	 * persisted; stores must ignore it
	 */
	Channel ChannelInfo
}
