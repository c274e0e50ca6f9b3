package inventory

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate reads an ISO calendar date or timestamp. Values without a zone are UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// firstBlockedIn returns the first stored blocked date inside [start, end].
// Entries that do not parse never block.
func firstBlockedIn(blocked []string, start, end time.Time) (string, bool) {
	for _, raw := range blocked {
		day, ok := ParseDate(raw)
		if !ok {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return raw, true
		}
	}
	return "", false
}

// unionDates appends the new dates not already present, keeping existing order first.
func unionDates(existing, added []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, d := range list {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

func removeDates(existing, removed []string) []string {
	drop := make(map[string]struct{}, len(removed))
	for _, d := range removed {
		drop[d] = struct{}{}
	}
	out := make([]string, 0, len(existing))
	for _, d := range existing {
		if _, ok := drop[d]; ok {
			continue
		}
		out = append(out, d)
	}
	return out
}
