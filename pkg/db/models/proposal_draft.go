package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
)

// ProposalDraft holds the single current staged proposal per kind. Writes replace the row.
type ProposalDraft struct {
	Kind       enums.DraftKind `gorm:"primaryKey"`
	ProposalID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_proposal_drafts_proposal"`
	ClientName string          `gorm:"not null"`
	ItemCount  int             `gorm:"not null"`
	TotalNeto  decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	TotalBruto decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Payload    dbtypes.JSON    `gorm:"not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}
