package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	maxMutationAttempts = 3
	NotFoundMessage     = "Soporte no encontrado"
)

// AuditRecorder stores availability changes in the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, payload audit.Payload, description string) (audit.Entry, error)
}

// ServiceParams groups dependencies for the inventory service.
type ServiceParams struct {
	Repo   *Repository
	Audit  AuditRecorder
	Logger *logger.Logger
}

// Service exposes catalog queries and availability mutations.
type Service interface {
	GetAll(ctx context.Context) ([]Item, error)
	GetAvailable(ctx context.Context) ([]Item, error)
	GetByZone(ctx context.Context, zone string) ([]Item, error)
	GetByType(ctx context.Context, supportType string) ([]Item, error)
	GetByOwner(ctx context.Context, owner string) ([]Item, error)
	GetThirdParty(ctx context.Context) ([]Item, error)
	Search(ctx context.Context, query SearchQuery) ([]Item, error)
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	GetByCode(ctx context.Context, code string) (*Item, error)
	GetFullDetails(ctx context.Context, id uuid.UUID) (*DetailView, error)
	GetMultipleFullDetails(ctx context.Context, ids []uuid.UUID) ([]DetailView, error)
	CheckAvailability(ctx context.Context, id uuid.UUID, startDate, endDate string) (AvailabilityCheck, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (StatusResult, error)
	BlockDates(ctx context.Context, id uuid.UUID, dates []string) (DatesResult, error)
	UnblockDates(ctx context.Context, id uuid.UUID, dates []string) (DatesResult, error)
}

type store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	FindByCode(ctx context.Context, code string) (*models.InventoryItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.InventoryItem, error)
	List(ctx context.Context, filter Filter) ([]models.InventoryItem, error)
	UpdateVersioned(ctx context.Context, id uuid.UUID, version int, updates map[string]any) (bool, error)
}

type service struct {
	repo  store
	audit AuditRecorder
	logg  *logger.Logger
}

// NewService builds an inventory service. The audit recorder is optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory repo is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: params.Repo, audit: params.Audit, logg: logg}, nil
}

func (s *service) list(ctx context.Context, filter Filter) ([]Item, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	return toItems(rows), nil
}

func (s *service) GetAll(ctx context.Context) ([]Item, error) {
	return s.list(ctx, Filter{})
}

func (s *service) GetAvailable(ctx context.Context) ([]Item, error) {
	return s.list(ctx, Filter{OnlyAvailable: true})
}

func (s *service) GetByZone(ctx context.Context, zone string) ([]Item, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "la zona es obligatoria")
	}
	return s.list(ctx, Filter{Zone: zone})
}

func (s *service) GetByType(ctx context.Context, supportType string) ([]Item, error) {
	parsed, err := enums.ParseSupportType(strings.TrimSpace(supportType))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tipo de soporte inválido")
	}
	return s.list(ctx, Filter{Type: parsed})
}

func (s *service) GetByOwner(ctx context.Context, owner string) ([]Item, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el propietario es obligatorio")
	}
	return s.list(ctx, Filter{Owner: owner})
}

func (s *service) GetThirdParty(ctx context.Context) ([]Item, error) {
	return s.list(ctx, Filter{ThirdParty: true})
}

// Search AND-combines the set criteria. A zero max price disables the price filter.
func (s *service) Search(ctx context.Context, query SearchQuery) ([]Item, error) {
	filter := Filter{
		Zone:          strings.TrimSpace(query.Zone),
		Owner:         strings.TrimSpace(query.Owner),
		OnlyAvailable: query.OnlyAvailable,
	}
	if t := strings.TrimSpace(query.Type); t != "" {
		parsed, err := enums.ParseSupportType(t)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tipo de soporte inválido")
		}
		filter.Type = parsed
	}
	if query.MaxPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el precio máximo no puede ser negativo")
	}
	if query.MaxPrice > 0 {
		filter.MaxPrice = decimal.NewFromFloat(query.MaxPrice)
	}
	return s.list(ctx, filter)
}

// find returns nil without error when the id is unknown.
func (s *service) find(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	item, err := s.find(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	view := ToItem(*item)
	return &view, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el código es obligatorio")
	}
	item, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory by code")
	}
	view := ToItem(*item)
	return &view, nil
}

func (s *service) GetFullDetails(ctx context.Context, id uuid.UUID) (*DetailView, error) {
	item, err := s.find(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	view := ToDetailView(*item)
	return &view, nil
}

// GetMultipleFullDetails keeps the order of ids and drops unknown ones.
func (s *service) GetMultipleFullDetails(ctx context.Context, ids []uuid.UUID) ([]DetailView, error) {
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory batch")
	}
	byID := make(map[uuid.UUID]models.InventoryItem, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	out := make([]DetailView, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, ToDetailView(row))
		}
	}
	return out, nil
}

func (s *service) CheckAvailability(ctx context.Context, id uuid.UUID, startDate, endDate string) (AvailabilityCheck, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return AvailabilityCheck{}, err
	}
	if item == nil {
		return unavailable(NotFoundMessage), nil
	}

	start, ok := ParseDate(startDate)
	if !ok {
		return AvailabilityCheck{}, pkgerrors.New(pkgerrors.CodeValidation, "fecha de inicio inválida")
	}
	end, ok := ParseDate(endDate)
	if !ok {
		return AvailabilityCheck{}, pkgerrors.New(pkgerrors.CodeValidation, "fecha de fin inválida")
	}
	if item.Status != enums.InventoryStatusAvailable {
		return unavailable("Estado actual: " + item.Status.String()), nil
	}
	if date, blocked := firstBlockedIn(item.BlockedDates, start, end); blocked {
		return unavailable("Fecha bloqueada: " + date), nil
	}
	return AvailabilityCheck{Available: true}, nil
}

func unavailable(reason string) AvailabilityCheck {
	return AvailabilityCheck{Available: false, Reason: &reason}
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (StatusResult, error) {
	parsed, err := enums.ParseInventoryStatus(strings.TrimSpace(status))
	if err != nil {
		return StatusResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "estado inválido")
	}

	item, err := s.mutate(ctx, id, func(*models.InventoryItem) map[string]any {
		return map[string]any{"status": parsed}
	})
	if err != nil {
		return StatusResult{}, err
	}

	s.record(ctx, audit.AvailabilityChanged{
		InventoryID:   item.ID,
		InventoryCode: item.Code,
		Change:        audit.ChangeStatus,
		Status:        parsed.String(),
	}, fmt.Sprintf("Estado de %s actualizado a %s", item.Code, parsed))

	return StatusResult{Success: true, NewStatus: parsed}, nil
}

func (s *service) BlockDates(ctx context.Context, id uuid.UUID, dates []string) (DatesResult, error) {
	dates, err := normalizeDates(dates)
	if err != nil {
		return DatesResult{}, err
	}

	var next []string
	item, err := s.mutate(ctx, id, func(current *models.InventoryItem) map[string]any {
		next = unionDates(current.BlockedDates, dates)
		return map[string]any{"blocked_dates": dbtypes.StringList(next)}
	})
	if err != nil {
		return DatesResult{}, err
	}

	s.record(ctx, audit.AvailabilityChanged{
		InventoryID:   item.ID,
		InventoryCode: item.Code,
		Change:        audit.ChangeBlock,
		Dates:         dates,
	}, fmt.Sprintf("Fechas bloqueadas en %s: %s", item.Code, strings.Join(dates, ", ")))

	return DatesResult{Success: true, BlockedDates: next}, nil
}

func (s *service) UnblockDates(ctx context.Context, id uuid.UUID, dates []string) (DatesResult, error) {
	dates, err := normalizeDates(dates)
	if err != nil {
		return DatesResult{}, err
	}

	var next []string
	item, err := s.mutate(ctx, id, func(current *models.InventoryItem) map[string]any {
		next = removeDates(current.BlockedDates, dates)
		return map[string]any{"blocked_dates": dbtypes.StringList(next)}
	})
	if err != nil {
		return DatesResult{}, err
	}

	s.record(ctx, audit.AvailabilityChanged{
		InventoryID:   item.ID,
		InventoryCode: item.Code,
		Change:        audit.ChangeUnblock,
		Dates:         dates,
	}, fmt.Sprintf("Fechas desbloqueadas en %s: %s", item.Code, strings.Join(dates, ", ")))

	return DatesResult{Success: true, BlockedDates: next}, nil
}

func normalizeDates(dates []string) ([]string, error) {
	if len(dates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "se requiere al menos una fecha")
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if _, ok := ParseDate(d); !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fecha inválida").
				WithDetails(map[string]any{"date": d})
		}
		out = append(out, d)
	}
	return out, nil
}

// mutate reads the item, applies the updates built by change and writes them
// guarded by the row version. Lost races are retried with a fresh read.
func (s *service) mutate(ctx context.Context, id uuid.UUID, change func(*models.InventoryItem) map[string]any) (*models.InventoryItem, error) {
	for attempt := 1; attempt <= maxMutationAttempts; attempt++ {
		item, err := s.find(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}

		ok, err := s.repo.UpdateVersioned(ctx, id, item.Version, change(item))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory")
		}
		if ok {
			return item, nil
		}
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"inventory_id": id.String(),
			"attempt":      attempt,
		}), "inventory.version_conflict")
	}
	return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "el soporte fue modificado por otra operación").
		WithDetails(map[string]any{"inventoryId": id.String(), "attempts": maxMutationAttempts})
}

// record never fails the mutation; the row is already written.
func (s *service) record(ctx context.Context, payload audit.AvailabilityChanged, description string) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.Record(ctx, payload, description); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "inventory_id", payload.InventoryID.String()), "inventory.audit_failed", err)
	}
}
