package pricing

import (
	"math"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/google/uuid"
)

// Rates are the commercial rates applied to every quote. Values are fractions
// (0.20 = 20%).
type Rates struct {
	AgencyCommission       float64
	IntermediaryCommission float64
	IVA                    float64
	DaysPerMonth           int
	// Currency labels by-code quotes and proposal summaries.
	Currency enums.Currency
}

// DefaultRates returns the house rates: 20% agency, 10% intermediary, 21% IVA, 30-day month.
func DefaultRates() Rates {
	return Rates{
		AgencyCommission:       0.20,
		IntermediaryCommission: 0.10,
		IVA:                    0.21,
		DaysPerMonth:           30,
		Currency:               enums.CurrencyARS,
	}
}

// RatesFromConfig lifts the pricing section of the app config.
func RatesFromConfig(cfg config.PricingConfig) Rates {
	rates := Rates{
		AgencyCommission:       cfg.AgencyCommissionRate,
		IntermediaryCommission: cfg.IntermediaryCommissionRate,
		IVA:                    cfg.IVARate,
		DaysPerMonth:           cfg.DaysPerMonth,
	}
	if rates.DaysPerMonth <= 0 {
		rates.DaysPerMonth = DefaultRates().DaysPerMonth
	}
	if currency, err := enums.ParseCurrency(cfg.Currency); err == nil {
		rates.Currency = currency
	} else {
		rates.Currency = enums.CurrencyARS
	}
	return rates
}

// Input is the pricing-relevant slice of an inventory item plus the campaign length.
type Input struct {
	InventoryID      uuid.UUID
	Code             string
	CampaignDays     int
	RentalMonthly    float64
	ProductionCost   float64
	InstallationCost float64
	MunicipalTax     float64
	Currency         string
	IsThirdParty     bool
	// IncludeIntermediaryCommission overrides the third-party default when set.
	IncludeIntermediaryCommission *bool
}

// Breakdown is a single item quote. Monetary values are rounded to cents,
// except production and installation which are echoed as stored.
type Breakdown struct {
	InventoryID            uuid.UUID `json:"inventoryId"`
	Code                   string    `json:"code"`
	CampaignDays           int       `json:"campaignDays"`
	RentalProportional     float64   `json:"rentalProportional"`
	ProductionCost         float64   `json:"productionCost"`
	InstallationCost       float64   `json:"installationCost"`
	MunicipalTax           float64   `json:"municipalTax"`
	SubtotalNeto           float64   `json:"subtotalNeto"`
	AgencyCommission       float64   `json:"agencyCommission"`
	IntermediaryCommission float64   `json:"intermediaryCommission"`
	TotalNeto              float64   `json:"totalNeto"`
	IVA                    float64   `json:"iva"`
	TotalBruto             float64   `json:"totalBruto"`
	Currency               string    `json:"currency"`
	IsThirdParty           bool      `json:"isThirdParty"`
}

// components holds the unrounded intermediate values of a quote.
type components struct {
	rentalProportional     float64
	taxProportional        float64
	subtotalNeto           float64
	agencyCommission       float64
	intermediaryCommission float64
	totalNeto              float64
	iva                    float64
	totalBruto             float64
}

func (r Rates) compute(in Input, agencyRate, intermediaryRate float64) components {
	days := float64(in.CampaignDays)
	perMonth := float64(r.DaysPerMonth)

	var c components
	c.rentalProportional = in.RentalMonthly / perMonth * days
	c.taxProportional = in.MunicipalTax / perMonth * days
	c.subtotalNeto = c.rentalProportional + in.ProductionCost + in.InstallationCost + c.taxProportional
	c.agencyCommission = c.subtotalNeto * agencyRate
	c.intermediaryCommission = c.subtotalNeto * intermediaryRate
	c.totalNeto = c.subtotalNeto + c.agencyCommission + c.intermediaryCommission
	c.iva = c.totalNeto * r.IVA
	c.totalBruto = c.totalNeto + c.iva
	return c
}

// intermediaryRateFor applies the override, falling back to the third-party rule.
func (r Rates) intermediaryRateFor(in Input) float64 {
	include := in.IsThirdParty
	if in.IncludeIntermediaryCommission != nil {
		include = *in.IncludeIntermediaryCommission
	}
	if !include {
		return 0
	}
	return r.IntermediaryCommission
}

// Calculate prices a single item. It is pure and never fails.
func (r Rates) Calculate(in Input) Breakdown {
	c := r.compute(in, r.AgencyCommission, r.intermediaryRateFor(in))
	return Breakdown{
		InventoryID:            in.InventoryID,
		Code:                   in.Code,
		CampaignDays:           in.CampaignDays,
		RentalProportional:     Round2(c.rentalProportional),
		ProductionCost:         in.ProductionCost,
		InstallationCost:       in.InstallationCost,
		MunicipalTax:           Round2(c.taxProportional),
		SubtotalNeto:           Round2(c.subtotalNeto),
		AgencyCommission:       Round2(c.agencyCommission),
		IntermediaryCommission: Round2(c.intermediaryCommission),
		TotalNeto:              Round2(c.totalNeto),
		IVA:                    Round2(c.iva),
		TotalBruto:             Round2(c.totalBruto),
		Currency:               in.Currency,
		IsThirdParty:           in.IsThirdParty,
	}
}

// Totals returns the unrounded net and gross totals, for callers that sum
// several items before rounding.
func (r Rates) Totals(in Input) (totalNeto, totalBruto float64) {
	c := r.compute(in, r.AgencyCommission, r.intermediaryRateFor(in))
	return c.totalNeto, c.totalBruto
}

// WholeUnitBreakdown is the by-code quote, rounded to whole currency units.
type WholeUnitBreakdown struct {
	RentalProportional     float64
	ProductionCost         float64
	InstallationCost       float64
	MunicipalTax           float64
	SubtotalNeto           float64
	AgencyCommission       float64
	IntermediaryCommission float64
	TotalNeto              float64
	IVA                    float64
	TotalBruto             float64
}

// CalculateWholeUnits prices an item with the third-party rule and rounds to units.
func (r Rates) CalculateWholeUnits(in Input) WholeUnitBreakdown {
	c := r.compute(in, r.AgencyCommission, r.intermediaryRateFor(in))
	return WholeUnitBreakdown{
		RentalProportional:     RoundUnit(c.rentalProportional),
		ProductionCost:         in.ProductionCost,
		InstallationCost:       in.InstallationCost,
		MunicipalTax:           RoundUnit(c.taxProportional),
		SubtotalNeto:           RoundUnit(c.subtotalNeto),
		AgencyCommission:       RoundUnit(c.agencyCommission),
		IntermediaryCommission: RoundUnit(c.intermediaryCommission),
		TotalNeto:              RoundUnit(c.totalNeto),
		IVA:                    RoundUnit(c.iva),
		TotalBruto:             RoundUnit(c.totalBruto),
	}
}

// SimulationResult is a quote computed with explicit commission rates.
type SimulationResult struct {
	AgencyRate             float64
	IntermediaryRate       float64
	SubtotalNeto           float64
	AgencyCommission       float64
	IntermediaryCommission float64
	TotalNeto              float64
	IVA                    float64
	TotalBruto             float64
}

// Simulate prices with custom rates. A nil agency rate uses the configured one;
// a nil intermediary rate uses the configured one for third parties and zero otherwise.
func (r Rates) Simulate(in Input, agencyRate, intermediaryRate *float64) SimulationResult {
	agency := r.AgencyCommission
	if agencyRate != nil {
		agency = *agencyRate
	}
	intermediary := 0.0
	if in.IsThirdParty {
		intermediary = r.IntermediaryCommission
	}
	if intermediaryRate != nil {
		intermediary = *intermediaryRate
	}

	c := r.compute(in, agency, intermediary)
	return SimulationResult{
		AgencyRate:             agency,
		IntermediaryRate:       intermediary,
		SubtotalNeto:           Round2(c.subtotalNeto),
		AgencyCommission:       Round2(c.agencyCommission),
		IntermediaryCommission: Round2(c.intermediaryCommission),
		TotalNeto:              Round2(c.totalNeto),
		IVA:                    Round2(c.iva),
		TotalBruto:             Round2(c.totalBruto),
	}
}

// Round2 rounds half away from zero to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundUnit rounds to a whole currency unit.
func RoundUnit(v float64) float64 {
	return math.Round(v)
}

// Percent converts a fraction to a percentage for display.
func Percent(rate float64) float64 {
	return rate * 100
}
