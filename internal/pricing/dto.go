package pricing

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/angelmondragon/ooh-agent-backend/pkg/types"
)

const thirdPartyNote = "Precio sujeto a confirmación de disponibilidad (tercero)"

// ItemPriceRequest prices a single support by id.
type ItemPriceRequest struct {
	InventoryID                   uuid.UUID
	CampaignDays                  int
	IncludeIntermediaryCommission *bool
}

// ItemRequest is one line of a proposal total.
type ItemRequest struct {
	InventoryID  uuid.UUID `json:"inventoryId" validate:"required"`
	CampaignDays int       `json:"campaignDays" validate:"gte=0"`
}

// CodeQuote is the agent-facing quote. Field names are the ones the agent
// prompt was written against.
type CodeQuote struct {
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	Codigo      string        `json:"codigo,omitempty"`
	Tipo        string        `json:"tipo,omitempty"`
	Ubicacion   string        `json:"ubicacion,omitempty"`
	Zona        string        `json:"zona,omitempty"`
	Propietario string        `json:"propietario,omitempty"`
	EsTercero   bool          `json:"esTercero"`
	DiasCampana int           `json:"diasCampana"`
	Desglose    *CodeDesglose `json:"desglose,omitempty"`
	TotalNeto   float64       `json:"totalNeto"`
	IVA         float64       `json:"iva"`
	TotalBruto  float64       `json:"totalBruto"`
	Moneda      string        `json:"moneda,omitempty"`
	Nota        *string       `json:"nota"`
}

// MarshalJSON renders a miss as {success:false, error} only.
func (q CodeQuote) MarshalJSON() ([]byte, error) {
	if !q.Success {
		return json.Marshal(types.NewAgentFailure(q.Error))
	}
	type plain CodeQuote
	return json.Marshal(plain(q))
}

type CodeDesglose struct {
	AlquilerProporcional  float64 `json:"alquilerProporcional"`
	Produccion            float64 `json:"produccion"`
	Instalacion           float64 `json:"instalacion"`
	TasaMunicipal         float64 `json:"tasaMunicipal"`
	SubtotalNeto          float64 `json:"subtotalNeto"`
	ComisionAgencia       float64 `json:"comisionAgencia"`
	ComisionIntermediario float64 `json:"comisionIntermediario"`
}

// ProposalTotal aggregates several item quotes.
type ProposalTotal struct {
	Success  bool              `json:"success"`
	Items    []Breakdown       `json:"items"`
	Summary  ProposalSummary   `json:"summary"`
	Warnings *ProposalWarnings `json:"warnings"`
}

type ProposalSummary struct {
	ItemCount          int     `json:"itemCount"`
	TotalNeto          float64 `json:"totalNeto"`
	TotalBruto         float64 `json:"totalBruto"`
	Currency           string  `json:"currency"`
	HasThirdPartyItems bool    `json:"hasThirdPartyItems"`
}

type ProposalWarnings struct {
	Message     string      `json:"message"`
	NotFoundIDs []uuid.UUID `json:"notFoundIds"`
}

// SimulationRequest prices a support with negotiated rates.
type SimulationRequest struct {
	InventoryID            uuid.UUID
	CampaignDays           int
	CustomAgencyRate       *float64
	CustomIntermediaryRate *float64
}

type Simulation struct {
	Success                bool         `json:"success"`
	Code                   string       `json:"code"`
	CampaignDays           int          `json:"campaignDays"`
	AppliedRates           AppliedRates `json:"appliedRates"`
	SubtotalNeto           float64      `json:"subtotalNeto"`
	AgencyCommission       float64      `json:"agencyCommission"`
	IntermediaryCommission float64      `json:"intermediaryCommission"`
	TotalNeto              float64      `json:"totalNeto"`
	IVA                    float64      `json:"iva"`
	TotalBruto             float64      `json:"totalBruto"`
	Currency               string       `json:"currency"`
}

// AppliedRates are expressed in percent.
type AppliedRates struct {
	AgencyRate       float64 `json:"agencyRate"`
	IntermediaryRate float64 `json:"intermediaryRate"`
	IVARate          float64 `json:"ivaRate"`
}

// ConfigView exposes the active rates in percent.
type ConfigView struct {
	AgencyCommissionRate       float64 `json:"agencyCommissionRate"`
	IntermediaryCommissionRate float64 `json:"intermediaryCommissionRate"`
	IVARate                    float64 `json:"ivaRate"`
	DaysPerMonth               int     `json:"daysPerMonth"`
}
