package receiver

import "fmt"

/* Type selects the invocation path of a receiver
 * Webhook receivers are fired by an anonymous POST to a derived URL
 * Signal receivers are fired by a direct, authenticated call
 */
type Type int

const (
	Webhook Type = iota + 1
	Signal
)

// String returns the string representation of the receiver type
func (t Type) String() string {
	switch t {
	case Webhook:
		return "webhook"
	case Signal:
		return "signal"
	default:
		return "unknown"
	}
}

// NewType creates a Type from a string, defaulting to Webhook
func NewType(s string) Type {
	switch s {
	case "webhook":
		return Webhook
	case "signal":
		return Signal
	default:
		return Webhook
	}
}

// ParseType creates a Type from a string, rejecting unknown values
func ParseType(s string) (Type, error) {
	switch s {
	case "webhook":
		return Webhook, nil
	case "signal":
		return Signal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Validate checks if the receiver type is valid
func (t Type) Validate() error {
	if t != Webhook && t != Signal {
		return fmt.Errorf("%w: %d", ErrInvalidType, t)
	}
	return nil
}
