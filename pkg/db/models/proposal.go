package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
)

// Proposal is a rendered commercial proposal.
type Proposal struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientName    string    `gorm:"not null;index:idx_proposals_client"`
	ClientLogoURL *string
	CampaignStart string               `gorm:"not null"`
	CampaignEnd   string               `gorm:"not null"`
	TotalNeto     decimal.Decimal      `gorm:"type:numeric(16,2);not null"`
	TotalBruto    decimal.Decimal      `gorm:"type:numeric(16,2);not null"`
	Status        enums.ProposalStatus `gorm:"not null;index:idx_proposals_status"`
	PDFURL        *string              `gorm:"column:pdf_url"`
	Items         []ProposalItem       `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time            `gorm:"autoCreateTime;index:idx_proposals_created"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime"`
}

func (p *Proposal) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProposalItem references a priced inventory support within a proposal.
type ProposalItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProposalID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_proposal_items_proposal"`
	InventoryID     uuid.UUID       `gorm:"type:uuid;not null"`
	Code            string          `gorm:"not null"`
	CalculatedPrice decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Days            int             `gorm:"not null"`
	Position        int             `gorm:"not null;default:0"`
}

func (i *ProposalItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
