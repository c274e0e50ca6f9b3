package proposals

import (
	"time"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/google/uuid"
)

// PendingItem is one line of a summary-only proposal.
type PendingItem struct {
	Code       string  `json:"code" validate:"required"`
	Type       string  `json:"type" validate:"required"`
	Location   string  `json:"location"`
	Days       int     `json:"days" validate:"gte=0"`
	TotalNeto  float64 `json:"totalNeto" validate:"gte=0"`
	TotalBruto float64 `json:"totalBruto" validate:"gte=0"`
}

// PendingProposal is the payload of the pending slot.
type PendingProposal struct {
	ProposalID    uuid.UUID     `json:"proposalId"`
	ClientName    string        `json:"clientName"`
	ClientLogoURL *string       `json:"clientLogoUrl,omitempty"`
	CampaignStart string        `json:"campaignStart"`
	CampaignEnd   string        `json:"campaignEnd"`
	ProposalItems []PendingItem `json:"proposalItems"`
	TotalNeto     float64       `json:"totalNeto"`
	TotalBruto    float64       `json:"totalBruto"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// RichItem carries everything a product sheet page prints.
type RichItem struct {
	Code         string `json:"code" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Owner        string `json:"owner" validate:"required"`
	IsThirdParty bool   `json:"isThirdParty"`

	Address      string  `json:"address" validate:"required"`
	City         string  `json:"city"`
	Zone         string  `json:"zone"`
	Neighborhood string  `json:"neighborhood"`
	Lat          float64 `json:"lat" validate:"gte=-90,lte=90"`
	Long         float64 `json:"long" validate:"gte=-180,lte=180"`

	VisibleDimensions string `json:"visible_dimensions"`
	TotalDimensions   string `json:"total_dimensions"`
	Resolution        string `json:"resolution"`
	Lighting          bool   `json:"lighting"`
	SubFormat         string `json:"sub_format"`
	MaterialSpec      string `json:"material_spec"`
	SendFormat        string `json:"send_format"`
	SendDeadline      string `json:"send_deadline"`
	AdditionalInfo    string `json:"additional_info"`

	DailyOTS int `json:"daily_ots" validate:"gte=0"`

	BaseImageURL   string  `json:"base_image_url"`
	MockupImageURL *string `json:"mockup_image_url,omitempty"`

	Days             int     `json:"days" validate:"gte=0"`
	RentalMonthly    float64 `json:"rental_monthly" validate:"gte=0"`
	ProductionCost   float64 `json:"production_cost" validate:"gte=0"`
	InstallationCost float64 `json:"installation_cost" validate:"gte=0"`
	MunicipalTax     float64 `json:"municipal_tax" validate:"gte=0"`
	TotalNeto        float64 `json:"totalNeto" validate:"gte=0"`
	TotalBruto       float64 `json:"totalBruto" validate:"gte=0"`

	AvailabilityDisplay string `json:"availabilityDisplay"`
}

// RichProposal is the payload of the rich slot and the input of the PDF builder.
type RichProposal struct {
	ProposalID    uuid.UUID  `json:"proposalId"`
	ClientName    string     `json:"clientName" validate:"required"`
	ClientLogoURL *string    `json:"clientLogoUrl,omitempty"`
	CampaignStart string     `json:"campaignStart,omitempty"`
	CampaignEnd   string     `json:"campaignEnd,omitempty"`
	CampaignDays  int        `json:"campaignDays,omitempty"`
	Items         []RichItem `json:"items" validate:"dive"`
	TotalNeto     float64    `json:"totalNeto"`
	TotalBruto    float64    `json:"totalBruto"`
	GeneratedAt   time.Time  `json:"generatedAt"`
	HasMockups    bool       `json:"hasMockups,omitempty"`
	MockupMethod  string     `json:"mockupMethod,omitempty"`
}

type StorePendingRequest struct {
	ClientName    string        `json:"client_name" validate:"required"`
	ClientLogoURL *string       `json:"client_logo_url,omitempty" validate:"omitempty,url"`
	CampaignStart string        `json:"campaign_start" validate:"required"`
	CampaignEnd   string        `json:"campaign_end" validate:"required"`
	Items         []PendingItem `json:"items" validate:"required,min=1,dive"`
	TotalNeto     float64       `json:"total_neto" validate:"gte=0"`
	TotalBruto    float64       `json:"total_bruto" validate:"gte=0"`
}

// StoreByCodesRequest prices the codes server side. Without campaign_days the
// inclusive length of the campaign window is used.
type StoreByCodesRequest struct {
	ClientName    string   `json:"client_name" validate:"required"`
	ClientLogoURL *string  `json:"client_logo_url,omitempty" validate:"omitempty,url"`
	CampaignStart string   `json:"campaign_start" validate:"required"`
	CampaignEnd   string   `json:"campaign_end" validate:"required"`
	CampaignDays  *int     `json:"campaign_days,omitempty" validate:"omitempty,gte=0"`
	Codes         []string `json:"codes" validate:"required,min=1,dive,required"`
}

type StoreRichRequest struct {
	ClientName    string     `json:"client_name" validate:"required"`
	ClientLogoURL *string    `json:"client_logo_url,omitempty" validate:"omitempty,url"`
	CampaignStart string     `json:"campaign_start" validate:"required"`
	CampaignEnd   string     `json:"campaign_end" validate:"required"`
	Items         []RichItem `json:"items" validate:"required,min=1,dive"`
	TotalNeto     float64    `json:"total_neto" validate:"gte=0"`
	TotalBruto    float64    `json:"total_bruto" validate:"gte=0"`
}

type StoreWithMockupsRequest struct {
	ClientName   string   `json:"client_name" validate:"required"`
	CampaignDays int      `json:"campaign_days" validate:"gte=0"`
	Codes        []string `json:"codes" validate:"required,min=1,dive,required"`
}

type Totals struct {
	TotalNeto  float64 `json:"totalNeto"`
	TotalBruto float64 `json:"totalBruto"`
}

// StoreResult is returned by every staging operation.
type StoreResult struct {
	Success      bool      `json:"success"`
	ProposalID   uuid.UUID `json:"proposalId"`
	ClientName   string    `json:"clientName"`
	ItemCount    int       `json:"itemCount"`
	Totals       Totals    `json:"totals"`
	MockupMethod string    `json:"mockupMethod,omitempty"`
	Message      string    `json:"message"`
}

type CompleteRequest struct {
	ProposalID uuid.UUID `json:"proposalId" validate:"required"`
	PDFURL     string    `json:"pdf_url" validate:"required,url"`
}

type CompleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type StatusResult struct {
	Success   bool                 `json:"success"`
	NewStatus enums.ProposalStatus `json:"newStatus"`
}

type ProposalItem struct {
	InventoryID     uuid.UUID `json:"inventory_id"`
	Code            string    `json:"code"`
	CalculatedPrice float64   `json:"calculated_price"`
	Days            int       `json:"days"`
}

// Proposal is a completed proposal as stored.
type Proposal struct {
	ID            uuid.UUID            `json:"id"`
	ClientName    string               `json:"client_name"`
	ClientLogoURL *string              `json:"client_logo_url,omitempty"`
	CampaignStart string               `json:"campaign_start"`
	CampaignEnd   string               `json:"campaign_end"`
	Items         []ProposalItem       `json:"items"`
	TotalNeto     float64              `json:"total_neto"`
	TotalBruto    float64              `json:"total_bruto"`
	Status        enums.ProposalStatus `json:"status"`
	PDFURL        *string              `json:"pdf_url,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func toProposal(row models.Proposal) Proposal {
	items := make([]ProposalItem, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, ProposalItem{
			InventoryID:     item.InventoryID,
			Code:            item.Code,
			CalculatedPrice: item.CalculatedPrice.InexactFloat64(),
			Days:            item.Days,
		})
	}
	return Proposal{
		ID:            row.ID,
		ClientName:    row.ClientName,
		ClientLogoURL: row.ClientLogoURL,
		CampaignStart: row.CampaignStart,
		CampaignEnd:   row.CampaignEnd,
		Items:         items,
		TotalNeto:     row.TotalNeto.InexactFloat64(),
		TotalBruto:    row.TotalBruto.InexactFloat64(),
		Status:        row.Status,
		PDFURL:        row.PDFURL,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
