package receiver

import (
	"fmt"
	"strings"
)

// ChannelInfo describes how a receiver is triggered from outside.
// For webhook receivers it carries the derived invocation URL; for signal
// receivers it is empty.
type ChannelInfo struct {
	AlarmURL string `json:"alarm_url,omitempty"`
}

// IsZero reports whether the channel carries no invocation endpoint
func (c ChannelInfo) IsZero() bool {
	return c.AlarmURL == ""
}

/* ChannelAllocator derives the invocation channel for a receiver
 * The URL is a pure function of the receiver ID and the service endpoint:
 * no randomness, no storage, recomputing always yields the same URL
 */
type ChannelAllocator struct {
	// Endpoint is the externally reachable base URL of this service.
	Endpoint string
}

// Channel returns the invocation descriptor for a receiver
func (a ChannelAllocator) Channel(id string, t Type) ChannelInfo {
	if t != Webhook {
		return ChannelInfo{}
	}
	base := strings.TrimRight(a.Endpoint, "/")
	return ChannelInfo{
		AlarmURL: fmt.Sprintf("%s/v1/receivers/%s/trigger?V=1", base, id),
	}
}
