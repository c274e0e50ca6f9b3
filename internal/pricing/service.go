package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryReader is the lookup surface pricing needs from the catalog.
type InventoryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	FindByCode(ctx context.Context, code string) (*models.InventoryItem, error)
}

// QuoteRecorder counts produced quotes.
type QuoteRecorder interface {
	IncQuote(path string, thirdParty bool)
}

// ServiceParams groups dependencies for the pricing service.
type ServiceParams struct {
	Inventory InventoryReader
	Rates     Rates
	Metrics   QuoteRecorder
}

// Service exposes the quoting queries used by the agent.
type Service interface {
	CalculateItemPrice(ctx context.Context, req ItemPriceRequest) (Breakdown, error)
	CalculateByCode(ctx context.Context, code string, campaignDays int) (CodeQuote, error)
	CalculateProposalTotal(ctx context.Context, items []ItemRequest) (ProposalTotal, error)
	SimulatePrice(ctx context.Context, req SimulationRequest) (Simulation, error)
	Config() ConfigView
	Rates() Rates
}

type service struct {
	inventory InventoryReader
	rates     Rates
	metrics   QuoteRecorder
}

// NewService builds a pricing service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Inventory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory reader is required")
	}
	if params.Rates.DaysPerMonth <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "days per month must be positive")
	}
	return &service{
		inventory: params.Inventory,
		rates:     params.Rates,
		metrics:   params.Metrics,
	}, nil
}

// InputFromItem maps a stored support onto the engine input.
func InputFromItem(item *models.InventoryItem, campaignDays int) Input {
	currency := item.Currency.OrDefault().String()
	return Input{
		InventoryID:      item.ID,
		Code:             item.Code,
		CampaignDays:     campaignDays,
		RentalMonthly:    item.RentalMonthly.InexactFloat64(),
		ProductionCost:   item.ProductionCost.InexactFloat64(),
		InstallationCost: item.InstallationCost.InexactFloat64(),
		MunicipalTax:     item.MunicipalTax.InexactFloat64(),
		Currency:         currency,
		IsThirdParty:     item.IsThirdParty(),
	}
}

func (s *service) Rates() Rates {
	return s.rates
}

func (s *service) Config() ConfigView {
	return ConfigView{
		AgencyCommissionRate:       Percent(s.rates.AgencyCommission),
		IntermediaryCommissionRate: Percent(s.rates.IntermediaryCommission),
		IVARate:                    Percent(s.rates.IVA),
		DaysPerMonth:               s.rates.DaysPerMonth,
	}
}

// CalculateItemPrice quotes one support by id.
func (s *service) CalculateItemPrice(ctx context.Context, req ItemPriceRequest) (Breakdown, error) {
	if err := validateDays(req.CampaignDays); err != nil {
		return Breakdown{}, err
	}
	item, err := s.loadByID(ctx, req.InventoryID)
	if err != nil {
		return Breakdown{}, err
	}

	in := InputFromItem(item, req.CampaignDays)
	in.IncludeIntermediaryCommission = req.IncludeIntermediaryCommission
	s.count("inventory", in.IsThirdParty)
	return s.rates.Calculate(in), nil
}

// CalculateByCode quotes a support by its public code in whole currency units.
// A miss is reported in the payload, not as an error.
func (s *service) CalculateByCode(ctx context.Context, code string, campaignDays int) (CodeQuote, error) {
	if err := validateDays(campaignDays); err != nil {
		return CodeQuote{}, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return CodeQuote{}, pkgerrors.New(pkgerrors.CodeValidation, "el código es obligatorio")
	}

	item, err := s.inventory.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CodeQuote{Success: false, Error: fmt.Sprintf("No se encontró el soporte con código %s", code)}, nil
		}
		return CodeQuote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory by code")
	}

	in := InputFromItem(item, campaignDays)
	units := s.rates.CalculateWholeUnits(in)
	s.count("code", in.IsThirdParty)

	var note *string
	if in.IsThirdParty {
		n := thirdPartyNote
		note = &n
	}

	return CodeQuote{
		Success:     true,
		Codigo:      item.Code,
		Tipo:        string(item.Type),
		Ubicacion:   item.Address,
		Zona:        item.Zone,
		Propietario: item.Owner,
		EsTercero:   in.IsThirdParty,
		DiasCampana: campaignDays,
		Desglose: &CodeDesglose{
			AlquilerProporcional:  units.RentalProportional,
			Produccion:            units.ProductionCost,
			Instalacion:           units.InstallationCost,
			TasaMunicipal:         units.MunicipalTax,
			SubtotalNeto:          units.SubtotalNeto,
			ComisionAgencia:       units.AgencyCommission,
			ComisionIntermediario: units.IntermediaryCommission,
		},
		TotalNeto:  units.TotalNeto,
		IVA:        units.IVA,
		TotalBruto: units.TotalBruto,
		Moneda:     s.rates.Currency.OrDefault().String(),
		Nota:       note,
	}, nil
}

// CalculateProposalTotal quotes each line and sums the rounded totals.
// Unknown ids are skipped and reported as a warning.
func (s *service) CalculateProposalTotal(ctx context.Context, items []ItemRequest) (ProposalTotal, error) {
	result := ProposalTotal{
		Success: true,
		Items:   []Breakdown{},
		Summary: ProposalSummary{Currency: s.rates.Currency.OrDefault().String()},
	}
	notFound := []uuid.UUID{}
	var totalNeto, totalBruto float64

	for _, line := range items {
		if err := validateDays(line.CampaignDays); err != nil {
			return ProposalTotal{}, err
		}
		item, err := s.inventory.FindByID(ctx, line.InventoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound = append(notFound, line.InventoryID)
				continue
			}
			return ProposalTotal{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
		}

		in := InputFromItem(item, line.CampaignDays)
		if in.IsThirdParty {
			result.Summary.HasThirdPartyItems = true
		}
		breakdown := s.rates.Calculate(in)
		s.count("inventory", in.IsThirdParty)

		result.Items = append(result.Items, breakdown)
		totalNeto += breakdown.TotalNeto
		totalBruto += breakdown.TotalBruto
	}

	result.Summary.ItemCount = len(result.Items)
	result.Summary.TotalNeto = Round2(totalNeto)
	result.Summary.TotalBruto = Round2(totalBruto)
	if len(notFound) > 0 {
		result.Warnings = &ProposalWarnings{
			Message:     fmt.Sprintf("%d soporte(s) no encontrado(s)", len(notFound)),
			NotFoundIDs: notFound,
		}
	}
	return result, nil
}

// SimulatePrice quotes a support with negotiated commission rates.
func (s *service) SimulatePrice(ctx context.Context, req SimulationRequest) (Simulation, error) {
	if err := validateDays(req.CampaignDays); err != nil {
		return Simulation{}, err
	}
	for _, rate := range []*float64{req.CustomAgencyRate, req.CustomIntermediaryRate} {
		if rate != nil && (*rate < 0 || *rate > 1) {
			return Simulation{}, pkgerrors.New(pkgerrors.CodeValidation, "las tasas deben estar entre 0 y 1")
		}
	}

	item, err := s.loadByID(ctx, req.InventoryID)
	if err != nil {
		return Simulation{}, err
	}

	in := InputFromItem(item, req.CampaignDays)
	sim := s.rates.Simulate(in, req.CustomAgencyRate, req.CustomIntermediaryRate)
	s.count("simulation", in.IsThirdParty)

	return Simulation{
		Success:      true,
		Code:         item.Code,
		CampaignDays: req.CampaignDays,
		AppliedRates: AppliedRates{
			AgencyRate:       Percent(sim.AgencyRate),
			IntermediaryRate: Percent(sim.IntermediaryRate),
			IVARate:          Percent(s.rates.IVA),
		},
		SubtotalNeto:           sim.SubtotalNeto,
		AgencyCommission:       sim.AgencyCommission,
		IntermediaryCommission: sim.IntermediaryCommission,
		TotalNeto:              sim.TotalNeto,
		IVA:                    sim.IVA,
		TotalBruto:             sim.TotalBruto,
		Currency:               in.Currency,
	}, nil
}

func (s *service) loadByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el id del soporte es obligatorio")
	}
	item, err := s.inventory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("No se encontró el soporte con ID %s", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}
	return item, nil
}

func (s *service) count(path string, thirdParty bool) {
	if s.metrics != nil {
		s.metrics.IncQuote(path, thirdParty)
	}
}

func validateDays(days int) error {
	if days < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "los días de campaña no pueden ser negativos")
	}
	return nil
}
