package audit

import (
	"encoding/json"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/angelmondragon/ooh-agent-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Entry is the API view of an audit log row.
type Entry struct {
	ID          uuid.UUID            `json:"id"`
	EventType   enums.AuditEventType `json:"eventType"`
	Description string               `json:"description"`
	Metadata    dbtypes.JSON         `json:"metadata,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
}

// Page is one page of GetRecent.
type Page = pagination.Page[Entry]

// LogInput is the generic write request.
type LogInput struct {
	EventType   string          `json:"eventType" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

func toEntry(row models.AuditLog) Entry {
	return Entry{
		ID:          row.ID,
		EventType:   row.EventType,
		Description: row.Description,
		Metadata:    row.Metadata,
		Timestamp:   row.OccurredAt.UTC(),
	}
}

func toEntries(rows []models.AuditLog) []Entry {
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntry(row))
	}
	return out
}

func envelopeFor(row models.AuditLog) ([]byte, error) {
	return json.Marshal(toEntry(row))
}
