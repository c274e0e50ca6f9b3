package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/angelmondragon/ooh-agent-backend/pkg/pagination"
)

const defaultListLimit = 50

// EventCounter counts recorded entries by type.
type EventCounter interface {
	IncAuditEvent(eventType string)
}

// ServiceParams groups dependencies for the audit service.
type ServiceParams struct {
	Repo      *Repository
	Publisher Publisher
	Metrics   EventCounter
	Logger    *logger.Logger
	Now       func() time.Time
}

// Service records and queries the audit trail.
type Service interface {
	Log(ctx context.Context, input LogInput) (Entry, error)
	Record(ctx context.Context, payload Payload, description string) (Entry, error)
	LogEmailSent(ctx context.Context, payload EmailSent) (Entry, error)
	LogProposalGenerated(ctx context.Context, payload ProposalGenerated) (Entry, error)
	LogThirdPartyRequest(ctx context.Context, payload ThirdPartyRequest) (Entry, error)
	GetRecent(ctx context.Context, limit int, cursor string) (Page, error)
	GetByEventType(ctx context.Context, eventType string, limit int) ([]Entry, error)
	GetByDateRange(ctx context.Context, start, end string) ([]Entry, error)
}

type service struct {
	repo      *Repository
	publisher Publisher
	metrics   EventCounter
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds an audit service. Publisher and metrics are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "audit repo is required")
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
		publisher: params.Publisher,
		metrics:   params.Metrics,
		logg:      logg,
		now:       now,
	}, nil
}

// Log writes a generic entry. Metadata, when present, must match the payload of
// the event type exactly.
func (s *service) Log(ctx context.Context, input LogInput) (Entry, error) {
	eventType, err := enums.ParseAuditEventType(strings.TrimSpace(input.EventType))
	if err != nil {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tipo de evento inválido")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return Entry{}, pkgerrors.New(pkgerrors.CodeValidation, "la descripción es obligatoria")
	}

	var metadata dbtypes.JSON
	if raw := json.RawMessage(input.Metadata); len(raw) > 0 && !dbtypes.JSON(raw).IsNull() {
		payload, err := DecodeMetadata(eventType, raw)
		if err != nil {
			return Entry{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "metadata inválida para el tipo de evento").
				WithDetails(map[string]any{"eventType": eventType, "reason": err.Error()})
		}
		if metadata, err = dbtypes.Marshal(payload); err != nil {
			return Entry{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode metadata")
		}
	}

	return s.write(ctx, eventType, description, metadata)
}

// Record writes a typed payload.
func (s *service) Record(ctx context.Context, payload Payload, description string) (Entry, error) {
	if payload == nil {
		return Entry{}, pkgerrors.New(pkgerrors.CodeValidation, "payload is required")
	}
	if err := validate.Struct(payload); err != nil {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "metadata inválida para el tipo de evento")
	}
	metadata, err := dbtypes.Marshal(payload)
	if err != nil {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode metadata")
	}
	return s.write(ctx, payload.EventType(), description, metadata)
}

func (s *service) LogEmailSent(ctx context.Context, payload EmailSent) (Entry, error) {
	description := fmt.Sprintf("Email enviado a %s (%s) para soporte %s",
		payload.PartnerName, payload.PartnerEmail, payload.InventoryCode)
	return s.Record(ctx, payload, description)
}

func (s *service) LogProposalGenerated(ctx context.Context, payload ProposalGenerated) (Entry, error) {
	description := fmt.Sprintf("Propuesta generada para %s: %d items, total $%s",
		payload.ClientName, payload.ItemCount, formatNumber(payload.TotalBruto))
	return s.Record(ctx, payload, description)
}

func (s *service) LogThirdPartyRequest(ctx context.Context, payload ThirdPartyRequest) (Entry, error) {
	description := fmt.Sprintf("Solicitud a tercero %s para %d soporte(s): %s",
		payload.PartnerName, len(payload.InventoryCodes), strings.Join(payload.InventoryCodes, ", "))
	return s.Record(ctx, payload, description)
}

func (s *service) write(ctx context.Context, eventType enums.AuditEventType, description string, metadata dbtypes.JSON) (Entry, error) {
	row := &models.AuditLog{
		EventType:   eventType,
		Description: description,
		Metadata:    metadata,
		OccurredAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write audit log")
	}
	if s.metrics != nil {
		s.metrics.IncAuditEvent(string(eventType))
	}
	s.publish(ctx, *row)
	return toEntry(*row), nil
}

// publish never fails the write; errors are logged.
func (s *service) publish(ctx context.Context, row models.AuditLog) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, row); err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"audit_id":   row.ID.String(),
			"event_type": row.EventType,
		})
		s.logg.Warn(logCtx, fmt.Sprintf("audit publish failed: %v", err))
	}
}

// GetRecent pages through the log newest first.
func (s *service) GetRecent(ctx context.Context, limit int, cursor string) (Page, error) {
	decoded, err := pagination.ParseCursor(cursor)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cursor inválido")
	}
	rows, err := s.repo.ListRecent(ctx, pagination.FetchLimit(limit), decoded)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit logs")
	}
	return pagination.Build(rows, limit, func(row models.AuditLog) pagination.Cursor {
		return pagination.Cursor{At: row.OccurredAt, ID: row.ID}
	}, toEntries), nil
}

func (s *service) GetByEventType(ctx context.Context, eventType string, limit int) ([]Entry, error) {
	parsed, err := enums.ParseAuditEventType(strings.TrimSpace(eventType))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tipo de evento inválido")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.repo.ListByEventType(ctx, parsed, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit logs by type")
	}
	return toEntries(rows), nil
}

// GetByDateRange returns entries inside [start, end]. A date-only end covers
// the whole day.
func (s *service) GetByDateRange(ctx context.Context, start, end string) ([]Entry, error) {
	from, _, err := parseBound(start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "fecha de inicio inválida")
	}
	to, dateOnly, err := parseBound(end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "fecha de fin inválida")
	}
	if dateOnly {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "la fecha de fin es anterior a la de inicio")
	}

	rows, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit logs by date")
	}
	return toEntries(rows), nil
}

func parseBound(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", value)
	}
	return t, true, nil
}

// formatNumber prints the shortest decimal form, without exponents.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
