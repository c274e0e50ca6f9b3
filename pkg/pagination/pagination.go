package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500

	cursorVersion = "v1"
)

// Cursor points at the last row of the previous page. Rows are ordered by
// (At desc, ID desc), so events sharing a timestamp still page deterministically.
type Cursor struct {
	At time.Time
	ID uuid.UUID
}

// Page is a window of rows plus the cursor for the next one, empty on the last page.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// FetchLimit is the number of rows to load for a page: one extra row tells
// whether another page exists.
func FetchLimit(limit int) int {
	return NormalizeLimit(limit) + 1
}

// Build cuts rows fetched with FetchLimit down to the page size and derives
// the next cursor from the last kept row.
func Build[R, T any](rows []R, limit int, cursorOf func(R) Cursor, convert func([]R) []T) Page[T] {
	size := NormalizeLimit(limit)
	var next string
	if len(rows) > size {
		rows = rows[:size]
		next = EncodeCursor(cursorOf(rows[len(rows)-1]))
	}
	items := convert(rows)
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, NextCursor: next}
}

func EncodeCursor(cursor Cursor) string {
	payload := strings.Join([]string{cursorVersion, cursor.At.UTC().Format(time.RFC3339Nano), cursor.ID.String()}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor returns nil for an empty cursor (first page).
func ParseCursor(value string) (*Cursor, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(value, "="))
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.Split(string(decoded), "|")
	if len(parts) != 3 || parts[0] != cursorVersion {
		return nil, fmt.Errorf("invalid cursor format")
	}

	at, err := time.Parse(time.RFC3339Nano, parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{At: at, ID: id}, nil
}
