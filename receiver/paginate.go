package receiver

import (
	"encoding/base64"
	"fmt"
	"sort"
)

/* Stateless pagination: the marker handed to clients is an opaque encoding
 * of the last-seen receiver ID, not server-side session state
 */

// EncodeMarker turns the last-seen receiver ID into an opaque page marker
func EncodeMarker(id string) string {
	if id == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(id))
}

// DecodeMarker recovers the last-seen receiver ID from an opaque marker
func DecodeMarker(marker string) (string, error) {
	if marker == "" {
		return "", nil
	}
	raw, err := base64.URLEncoding.DecodeString(marker)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMarker, marker)
	}
	return string(raw), nil
}

/* Paginate applies sort, marker and limit to a fully filtered result set
 * Shared by store implementations so the windowing semantics stay singular
 */
func Paginate(items []Receiver, sortKey, marker string, limit int) []Receiver {
	sorted := make([]Receiver, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		switch sortKey {
		case "name":
			if sorted[i].Name != sorted[j].Name {
				return sorted[i].Name < sorted[j].Name
			}
		default: // created_at
			if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
				return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
			}
		}
		// ID ties the order down so markers are unambiguous
		return sorted[i].ID < sorted[j].ID
	})

	if marker != "" {
		start := 0
		for i, r := range sorted {
			if r.ID == marker {
				start = i + 1
				break
			}
		}
		sorted = sorted[start:]
	}

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}

// MatchesFilter reports whether a receiver satisfies the field constraints
// of a filter (windowing fields are ignored)
func MatchesFilter(r Receiver, f Filter) bool {
	if f.Project != "" && r.Project != f.Project {
		return false
	}
	if f.Name != "" && r.Name != f.Name {
		return false
	}
	if f.Type != 0 && r.Type != f.Type {
		return false
	}
	if f.ClusterID != "" && r.ClusterID != f.ClusterID {
		return false
	}
	if f.Action != "" && r.Action != f.Action {
		return false
	}
	return true
}
