package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
)

// InventoryItem is an advertising support in the catalog.
type InventoryItem struct {
	ID    uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Code  string            `gorm:"not null;uniqueIndex:idx_inventory_code"`
	Type  enums.SupportType `gorm:"not null;index:idx_inventory_type"`
	Owner string            `gorm:"not null;index:idx_inventory_owner"`

	Address      string `gorm:"not null"`
	City         string `gorm:"not null"`
	Zone         string `gorm:"not null;index:idx_inventory_zone"`
	Neighborhood *string
	Lat          float64 `gorm:"not null"`
	Lng          float64 `gorm:"not null"`

	RentalMonthly    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ProductionCost   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	InstallationCost decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	MunicipalTax     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency         enums.Currency  `gorm:"not null;default:'ARS'"`

	VisibleDimensions string `gorm:"not null"`
	TotalDimensions   *string
	Resolution        *string
	Lighting          bool `gorm:"not null;default:false"`
	SubFormat         *string
	MaterialSpec      *string
	SendFormat        *string
	SendDeadline      *string
	AdditionalInfo    *string

	Status       enums.InventoryStatus `gorm:"not null;index:idx_inventory_status"`
	BlockedDates dbtypes.StringList    `gorm:"not null"`

	BaseImageURL string `gorm:"not null"`
	DailyOTS     int    `gorm:"column:daily_ots;not null;default:0"`

	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (InventoryItem) TableName() string { return "inventory" }

func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.BlockedDates == nil {
		i.BlockedDates = dbtypes.StringList{}
	}
	if i.Version == 0 {
		i.Version = 1
	}
	return nil
}

// IsThirdParty reports whether the support belongs to an external partner.
func (i InventoryItem) IsThirdParty() bool {
	return i.Owner != enums.GlobalOwner
}
