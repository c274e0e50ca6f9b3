package pdf

import (
	"context"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	"github.com/angelmondragon/ooh-agent-backend/internal/proposals"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/angelmondragon/ooh-agent-backend/pkg/maps"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// DraftReader loads the latest rich proposal staged for rendering.
type DraftReader interface {
	GetLatestRichProposal(ctx context.Context) (*proposals.RichProposal, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, payload audit.Payload, description string) (audit.Entry, error)
}

type ServiceParams struct {
	Drafts DraftReader
	Config config.PDFConfig
	Maps   *maps.Client
	Audit  AuditRecorder
	Logger *logger.Logger
	Now    func() time.Time
}

// Service renders proposal documents.
type Service interface {
	RenderLatest(ctx context.Context) (Result, error)
	Render(ctx context.Context, snapshot proposals.RichProposal) (Result, error)
}

type service struct {
	drafts DraftReader
	opts   Options
	audit  AuditRecorder
	logg   *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Drafts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft reader is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		drafts: params.Drafts,
		opts: Options{
			LogoDataURI:  params.Config.LogoDataURI,
			ContactLine:  params.Config.ContactLine,
			BaseImageURL: params.Config.DefaultBaseImage,
			Maps:         params.Maps,
			Now:          params.Now,
		},
		audit: params.Audit,
		logg:  logg,
	}, nil
}

// RenderLatest renders the rich proposal currently staged.
func (s *service) RenderLatest(ctx context.Context) (Result, error) {
	snapshot, err := s.drafts.GetLatestRichProposal(ctx)
	if err != nil {
		return Result{}, err
	}
	if snapshot == nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeNotFound, "no hay una propuesta enriquecida pendiente")
	}
	return s.render(ctx, *snapshot)
}

func (s *service) Render(ctx context.Context, snapshot proposals.RichProposal) (Result, error) {
	if err := validate.Struct(snapshot); err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "datos de propuesta inválidos")
	}
	return s.render(ctx, snapshot)
}

func (s *service) render(ctx context.Context, snapshot proposals.RichProposal) (Result, error) {
	res, err := Build(snapshot, s.opts)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render proposal document")
	}

	if s.audit != nil {
		event := audit.PDFGenerated{ClientName: res.ClientName, TotalPages: res.TotalPages}
		if snapshot.ProposalID != uuid.Nil {
			id := snapshot.ProposalID
			event.ProposalID = &id
		}
		if event.ClientName == "" {
			event.ClientName = defaultClientName
		}
		if _, err := s.audit.Record(ctx, event, "PDF generado para "+event.ClientName); err != nil {
			s.logg.Error(ctx, "pdf.audit_failed", err)
		}
	}
	return res, nil
}
