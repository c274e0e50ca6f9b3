package proposals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	"github.com/angelmondragon/ooh-agent-backend/internal/inventory"
	"github.com/angelmondragon/ooh-agent-backend/internal/pricing"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultDailyOTS = 50000
	noCodesMessage  = "No se encontraron soportes con los códigos proporcionados"
)

type staged struct {
	kind       enums.DraftKind
	id         uuid.UUID
	clientName string
	itemCount  int
	totals     Totals
	payload    any
	hasMockups bool
}

func (s *service) StorePendingProposal(ctx context.Context, req StorePendingRequest) (StoreResult, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	if err := validate.Struct(req); err != nil {
		return StoreResult{}, invalidRequest(err)
	}

	now := s.now().UTC()
	id := uuid.New()
	payload := PendingProposal{
		ProposalID:    id,
		ClientName:    req.ClientName,
		ClientLogoURL: req.ClientLogoURL,
		CampaignStart: req.CampaignStart,
		CampaignEnd:   req.CampaignEnd,
		ProposalItems: req.Items,
		TotalNeto:     req.TotalNeto,
		TotalBruto:    req.TotalBruto,
		CreatedAt:     now,
	}
	res, err := s.stage(ctx, now, staged{
		kind:       enums.DraftKindPending,
		id:         id,
		clientName: req.ClientName,
		itemCount:  len(req.Items),
		totals:     Totals{TotalNeto: req.TotalNeto, TotalBruto: req.TotalBruto},
		payload:    payload,
	})
	if err != nil {
		return StoreResult{}, err
	}
	res.Message = "Propuesta guardada correctamente"
	return res, nil
}

// StoreProposalByCodes prices each known code at cent precision and stages a
// pending proposal. Unknown codes are skipped.
func (s *service) StoreProposalByCodes(ctx context.Context, req StoreByCodesRequest) (StoreResult, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	if err := validate.Struct(req); err != nil {
		return StoreResult{}, invalidRequest(err)
	}
	days, err := campaignDays(req.CampaignDays, req.CampaignStart, req.CampaignEnd)
	if err != nil {
		return StoreResult{}, err
	}

	found, err := s.lookupCodes(ctx, req.Codes)
	if err != nil {
		return StoreResult{}, err
	}
	if len(found) == 0 {
		return StoreResult{}, pkgerrors.New(pkgerrors.CodeNotFound, noCodesMessage).
			WithDetails(map[string]any{"codes": req.Codes})
	}

	items := make([]PendingItem, 0, len(found))
	netos := make([]float64, 0, len(found))
	brutos := make([]float64, 0, len(found))
	for _, item := range found {
		quote := s.rates.Calculate(pricing.InputFromItem(item, days))
		items = append(items, PendingItem{
			Code:       item.Code,
			Type:       string(item.Type),
			Location:   locationLine(item),
			Days:       days,
			TotalNeto:  quote.TotalNeto,
			TotalBruto: quote.TotalBruto,
		})
		netos = append(netos, quote.TotalNeto)
		brutos = append(brutos, quote.TotalBruto)
	}

	totals := Totals{TotalNeto: money.Sum(2, netos...), TotalBruto: money.Sum(2, brutos...)}
	now := s.now().UTC()
	id := uuid.New()
	res, err := s.stage(ctx, now, staged{
		kind:       enums.DraftKindPending,
		id:         id,
		clientName: req.ClientName,
		itemCount:  len(items),
		totals:     totals,
		payload: PendingProposal{
			ProposalID:    id,
			ClientName:    req.ClientName,
			ClientLogoURL: req.ClientLogoURL,
			CampaignStart: req.CampaignStart,
			CampaignEnd:   req.CampaignEnd,
			ProposalItems: items,
			TotalNeto:     totals.TotalNeto,
			TotalBruto:    totals.TotalBruto,
			CreatedAt:     now,
		},
	})
	if err != nil {
		return StoreResult{}, err
	}
	res.Message = fmt.Sprintf("Propuesta guardada. %d soportes. Total: $%s", len(items), money.Format(totals.TotalBruto))
	return res, nil
}

func (s *service) StoreRichProposal(ctx context.Context, req StoreRichRequest) (StoreResult, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	if err := validate.Struct(req); err != nil {
		return StoreResult{}, invalidRequest(err)
	}

	now := s.now().UTC()
	id := uuid.New()
	hasMockups := false
	for _, item := range req.Items {
		if item.MockupImageURL != nil && *item.MockupImageURL != "" {
			hasMockups = true
			break
		}
	}
	res, err := s.stage(ctx, now, staged{
		kind:       enums.DraftKindRich,
		id:         id,
		clientName: req.ClientName,
		itemCount:  len(req.Items),
		totals:     Totals{TotalNeto: req.TotalNeto, TotalBruto: req.TotalBruto},
		hasMockups: hasMockups,
		payload: RichProposal{
			ProposalID:    id,
			ClientName:    req.ClientName,
			ClientLogoURL: req.ClientLogoURL,
			CampaignStart: req.CampaignStart,
			CampaignEnd:   req.CampaignEnd,
			Items:         req.Items,
			TotalNeto:     req.TotalNeto,
			TotalBruto:    req.TotalBruto,
			GeneratedAt:   now,
			HasMockups:    hasMockups,
		},
	})
	if err != nil {
		return StoreResult{}, err
	}
	res.Message = "Propuesta enriquecida guardada correctamente"
	return res, nil
}

// StoreProposalWithMockups builds product sheet items from the catalog, each
// with a generated mockup and whole-unit totals, and stages them as rich.
func (s *service) StoreProposalWithMockups(ctx context.Context, req StoreWithMockupsRequest) (StoreResult, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	if err := validate.Struct(req); err != nil {
		return StoreResult{}, invalidRequest(err)
	}

	found, err := s.lookupCodes(ctx, req.Codes)
	if err != nil {
		return StoreResult{}, err
	}
	if len(found) == 0 {
		return StoreResult{}, pkgerrors.New(pkgerrors.CodeNotFound, noCodesMessage).
			WithDetails(map[string]any{"codes": req.Codes})
	}

	var (
		method string
		netos  = make([]float64, 0, len(found))
		brutos = make([]float64, 0, len(found))
		items  = make([]RichItem, 0, len(found))
	)
	for _, item := range found {
		neto, bruto := s.rates.Totals(pricing.InputFromItem(item, req.CampaignDays))
		netos = append(netos, neto)
		brutos = append(brutos, bruto)

		url, used := s.mockups.URL(req.ClientName, item.Code, string(item.Type))
		method = string(used)

		rich := richItemFrom(item, req.CampaignDays)
		rich.MockupImageURL = &url
		rich.TotalNeto = pricing.RoundUnit(neto)
		rich.TotalBruto = pricing.RoundUnit(bruto)
		items = append(items, rich)
	}

	totals := Totals{TotalNeto: money.Sum(0, netos...), TotalBruto: money.Sum(0, brutos...)}
	now := s.now().UTC()
	id := uuid.New()
	res, err := s.stage(ctx, now, staged{
		kind:       enums.DraftKindRich,
		id:         id,
		clientName: req.ClientName,
		itemCount:  len(items),
		totals:     totals,
		hasMockups: true,
		payload: RichProposal{
			ProposalID:   id,
			ClientName:   req.ClientName,
			CampaignDays: req.CampaignDays,
			Items:        items,
			TotalNeto:    totals.TotalNeto,
			TotalBruto:   totals.TotalBruto,
			GeneratedAt:  now,
			HasMockups:   true,
			MockupMethod: method,
		},
	})
	if err != nil {
		return StoreResult{}, err
	}
	res.MockupMethod = method
	res.Message = fmt.Sprintf("Propuesta con mockups guardada. %d soportes. Total: $%s",
		len(items), money.FormatWhole(totals.TotalBruto))
	return res, nil
}

// stage writes the draft into its slot, then records telemetry.
func (s *service) stage(ctx context.Context, now time.Time, in staged) (StoreResult, error) {
	payload, err := dbtypes.Marshal(in.payload)
	if err != nil {
		return StoreResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode proposal draft")
	}
	draft := &models.ProposalDraft{
		Kind:       in.kind,
		ProposalID: in.id,
		ClientName: in.clientName,
		ItemCount:  in.itemCount,
		TotalNeto:  decimalFrom(in.totals.TotalNeto),
		TotalBruto: decimalFrom(in.totals.TotalBruto),
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.UpsertDraft(ctx, draft); err != nil {
		return StoreResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store proposal draft")
	}

	stagedEvent := audit.ProposalStaged{
		ProposalID: in.id,
		ClientName: in.clientName,
		ItemCount:  in.itemCount,
		TotalNeto:  in.totals.TotalNeto,
		TotalBruto: in.totals.TotalBruto,
		HasMockups: in.hasMockups,
	}
	if in.kind == enums.DraftKindRich {
		s.record(ctx, audit.ProposalRichPending{ProposalStaged: stagedEvent},
			fmt.Sprintf("Propuesta enriquecida para %s con %d items", in.clientName, in.itemCount))
	} else {
		s.record(ctx, audit.ProposalPendingPDF{ProposalStaged: stagedEvent},
			fmt.Sprintf("Propuesta para %s pendiente de generación de PDF", in.clientName))
	}

	return StoreResult{
		Success:    true,
		ProposalID: in.id,
		ClientName: in.clientName,
		ItemCount:  in.itemCount,
		Totals:     in.totals,
	}, nil
}

// lookupCodes keeps request order and drops unknown codes.
func (s *service) lookupCodes(ctx context.Context, codes []string) ([]*models.InventoryItem, error) {
	found := make([]*models.InventoryItem, 0, len(codes))
	for _, code := range codes {
		item, err := s.inventory.FindByCode(ctx, strings.TrimSpace(code))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory by code")
		}
		found = append(found, item)
	}
	return found, nil
}

func richItemFrom(item *models.InventoryItem, days int) RichItem {
	detail := inventory.ToDetailView(*item)
	ots := detail.Metrics.DailyOTS
	if ots <= 0 {
		ots = defaultDailyOTS
	}
	return RichItem{
		Code:                detail.Code,
		Type:                string(detail.Type),
		Owner:               detail.Owner,
		IsThirdParty:        detail.IsThirdParty,
		Address:             detail.Location.Address,
		City:                detail.Location.City,
		Zone:                detail.Location.Zone,
		Neighborhood:        detail.Location.Neighborhood,
		Lat:                 detail.Location.Coordinates.Lat,
		Long:                detail.Location.Coordinates.Long,
		VisibleDimensions:   detail.Specs.VisibleDimensions,
		TotalDimensions:     detail.Specs.TotalDimensions,
		Resolution:          detail.Specs.Resolution,
		Lighting:            detail.Specs.Lighting,
		SubFormat:           detail.Specs.SubFormat,
		MaterialSpec:        detail.Specs.MaterialSpec,
		SendFormat:          detail.Specs.SendFormat,
		SendDeadline:        detail.Specs.SendDeadline,
		AdditionalInfo:      detail.Specs.AdditionalInfo,
		DailyOTS:            ots,
		BaseImageURL:        detail.Media.BaseImageURL,
		Days:                days,
		RentalMonthly:       detail.Pricing.RentalMonthly,
		ProductionCost:      detail.Pricing.ProductionCost,
		InstallationCost:    detail.Pricing.InstallationCost,
		MunicipalTax:        detail.Pricing.MunicipalTax,
		AvailabilityDisplay: item.Status.ShortDisplay(),
	}
}

func locationLine(item *models.InventoryItem) string {
	if item.City == "" {
		return item.Address
	}
	return item.Address + ", " + item.City
}

// campaignDays prefers the explicit value, else counts the window inclusively.
func campaignDays(explicit *int, start, end string) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	from, okStart := inventory.ParseDate(start)
	to, okEnd := inventory.ParseDate(end)
	if !okStart || !okEnd {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "fechas de campaña inválidas")
	}
	if to.Before(from) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "la fecha de fin es anterior a la de inicio")
	}
	return int(to.Sub(from).Hours()/24) + 1, nil
}

func decimalFrom(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func invalidRequest(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "datos de propuesta inválidos")
}
