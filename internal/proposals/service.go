package proposals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	"github.com/angelmondragon/ooh-agent-backend/internal/mockups"
	"github.com/angelmondragon/ooh-agent-backend/internal/pricing"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100

	notFoundMessage = "Propuesta no encontrada"
)

var validate = validator.New()

// InventoryReader resolves supports by their public code.
type InventoryReader interface {
	FindByCode(ctx context.Context, code string) (*models.InventoryItem, error)
	FindByCodes(ctx context.Context, codes []string) ([]models.InventoryItem, error)
}

// MockupURLs renders a preview image for one support.
type MockupURLs interface {
	URL(clientName, code, supportType string) (string, mockups.Method)
}

// AuditRecorder stores staging and completion telemetry.
type AuditRecorder interface {
	Record(ctx context.Context, payload audit.Payload, description string) (audit.Entry, error)
}

// ServiceParams groups dependencies for the proposals service.
type ServiceParams struct {
	Repo      *Repository
	Inventory InventoryReader
	Rates     pricing.Rates
	Mockups   MockupURLs
	Audit     AuditRecorder
	Logger    *logger.Logger
	Now       func() time.Time
}

// Service stages proposals for PDF rendering and manages completed ones.
type Service interface {
	StorePendingProposal(ctx context.Context, req StorePendingRequest) (StoreResult, error)
	StoreProposalByCodes(ctx context.Context, req StoreByCodesRequest) (StoreResult, error)
	StoreRichProposal(ctx context.Context, req StoreRichRequest) (StoreResult, error)
	StoreProposalWithMockups(ctx context.Context, req StoreWithMockupsRequest) (StoreResult, error)
	GetLatestPendingProposal(ctx context.Context) (*PendingProposal, error)
	GetLatestRichProposal(ctx context.Context) (*RichProposal, error)
	CompleteProposal(ctx context.Context, req CompleteRequest) (CompleteResult, error)
	GetProposal(ctx context.Context, id uuid.UUID) (*Proposal, error)
	ListProposals(ctx context.Context, status string, limit int) ([]Proposal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (StatusResult, error)
}

type service struct {
	repo      *Repository
	inventory InventoryReader
	rates     pricing.Rates
	mockups   MockupURLs
	audit     AuditRecorder
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a proposals service. Audit, logger and clock are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposals repo is required")
	}
	if params.Inventory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory reader is required")
	}
	if params.Mockups == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mockup builder is required")
	}
	if params.Rates.DaysPerMonth <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "days per month must be positive")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:      params.Repo,
		inventory: params.Inventory,
		rates:     params.Rates,
		mockups:   params.Mockups,
		audit:     params.Audit,
		logg:      logg,
		now:       now,
	}, nil
}

func (s *service) GetLatestPendingProposal(ctx context.Context) (*PendingProposal, error) {
	draft, err := s.latestDraft(ctx, enums.DraftKindPending)
	if err != nil || draft == nil {
		return nil, err
	}
	var payload PendingProposal
	if err := draft.Payload.Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode pending proposal")
	}
	return &payload, nil
}

func (s *service) GetLatestRichProposal(ctx context.Context) (*RichProposal, error) {
	draft, err := s.latestDraft(ctx, enums.DraftKindRich)
	if err != nil || draft == nil {
		return nil, err
	}
	var payload RichProposal
	if err := draft.Payload.Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode rich proposal")
	}
	return &payload, nil
}

func (s *service) latestDraft(ctx context.Context, kind enums.DraftKind) (*models.ProposalDraft, error) {
	draft, err := s.repo.FindDraft(ctx, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load proposal draft")
	}
	return draft, nil
}

// CompleteProposal attaches the rendered PDF. A staged draft with that id is
// promoted into a stored proposal first; repeated calls only refresh the URL.
func (s *service) CompleteProposal(ctx context.Context, req CompleteRequest) (CompleteResult, error) {
	req.PDFURL = strings.TrimSpace(req.PDFURL)
	if err := validate.Struct(req); err != nil {
		return CompleteResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "solicitud de completado inválida")
	}

	ok, err := s.repo.Update(ctx, req.ProposalID, map[string]any{
		"status":  enums.ProposalStatusDraft,
		"pdf_url": req.PDFURL,
	})
	if err != nil {
		return CompleteResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update proposal")
	}
	if !ok {
		if err := s.promote(ctx, req.ProposalID, req.PDFURL); err != nil {
			return CompleteResult{}, err
		}
	}

	s.record(ctx, audit.ProposalPDFGenerated{ProposalID: req.ProposalID, PDFURL: req.PDFURL},
		fmt.Sprintf("PDF generado para la propuesta %s", req.ProposalID))

	return CompleteResult{Success: true, Message: "Propuesta actualizada con la URL del PDF"}, nil
}

type draftLine struct {
	code  string
	days  int
	price float64
}

func (s *service) promote(ctx context.Context, id uuid.UUID, pdfURL string) error {
	draft, err := s.repo.FindDraftByProposalID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load proposal draft")
	}

	var (
		logo       *string
		start, end string
		lines      []draftLine
	)
	switch draft.Kind {
	case enums.DraftKindRich:
		var payload RichProposal
		if err := draft.Payload.Decode(&payload); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode rich proposal")
		}
		logo, start, end = payload.ClientLogoURL, payload.CampaignStart, payload.CampaignEnd
		for _, item := range payload.Items {
			lines = append(lines, draftLine{code: item.Code, days: item.Days, price: item.TotalNeto})
		}
	default:
		var payload PendingProposal
		if err := draft.Payload.Decode(&payload); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode pending proposal")
		}
		logo, start, end = payload.ClientLogoURL, payload.CampaignStart, payload.CampaignEnd
		for _, item := range payload.ProposalItems {
			lines = append(lines, draftLine{code: item.Code, days: item.Days, price: item.TotalNeto})
		}
	}

	items, err := s.resolveLines(ctx, lines)
	if err != nil {
		return err
	}

	proposal := &models.Proposal{
		ID:            draft.ProposalID,
		ClientName:    draft.ClientName,
		ClientLogoURL: logo,
		CampaignStart: start,
		CampaignEnd:   end,
		TotalNeto:     draft.TotalNeto,
		TotalBruto:    draft.TotalBruto,
		Status:        enums.ProposalStatusDraft,
		PDFURL:        &pdfURL,
		Items:         items,
	}
	if err := s.repo.Create(ctx, proposal); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create proposal")
	}
	return nil
}

// resolveLines maps staged lines onto inventory ids, skipping unknown codes.
func (s *service) resolveLines(ctx context.Context, lines []draftLine) ([]models.ProposalItem, error) {
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		codes = append(codes, line.code)
	}
	rows, err := s.inventory.FindByCodes(ctx, codes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory by codes")
	}
	byCode := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		byCode[row.Code] = row.ID
	}

	items := make([]models.ProposalItem, 0, len(lines))
	for _, line := range lines {
		id, ok := byCode[line.code]
		if !ok {
			continue
		}
		items = append(items, models.ProposalItem{
			InventoryID:     id,
			Code:            line.code,
			CalculatedPrice: decimalFrom(line.price),
			Days:            line.days,
			Position:        len(items),
		})
	}
	return items, nil
}

func (s *service) GetProposal(ctx context.Context, id uuid.UUID) (*Proposal, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load proposal")
	}
	view := toProposal(*row)
	return &view, nil
}

func (s *service) ListProposals(ctx context.Context, status string, limit int) ([]Proposal, error) {
	var parsed enums.ProposalStatus
	if status = strings.TrimSpace(status); status != "" {
		var err error
		if parsed, err = enums.ParseProposalStatus(status); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "estado de propuesta inválido")
		}
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.repo.List(ctx, parsed, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list proposals")
	}
	out := make([]Proposal, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProposal(row))
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (StatusResult, error) {
	parsed, err := enums.ParseProposalStatus(strings.TrimSpace(status))
	if err != nil {
		return StatusResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "estado de propuesta inválido")
	}
	ok, err := s.repo.Update(ctx, id, map[string]any{"status": parsed})
	if err != nil {
		return StatusResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update proposal status")
	}
	if !ok {
		return StatusResult{}, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return StatusResult{Success: true, NewStatus: parsed}, nil
}

// record never fails the caller; the write it describes already happened.
func (s *service) record(ctx context.Context, payload audit.Payload, description string) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.Record(ctx, payload, description); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "event_type", payload.EventType().String()), "proposals.audit_failed", err)
	}
}
