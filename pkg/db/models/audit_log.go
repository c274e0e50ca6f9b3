package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
)

// AuditLog is an append-only record of a business event.
type AuditLog struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	EventType   enums.AuditEventType `gorm:"not null;index:idx_audit_logs_event_type"`
	Description string               `gorm:"not null"`
	Metadata    dbtypes.JSON
	OccurredAt  time.Time `gorm:"not null;index:idx_audit_logs_occurred_at"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}
	return nil
}

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&InventoryItem{},
		&Partner{},
		&Proposal{},
		&ProposalItem{},
		&ProposalDraft{},
		&AuditLog{},
	}
}
