package partners

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const notFoundMessage = "Partner no encontrado"

var validate = validator.New()

// InventoryReader resolves the support a contact lookup starts from.
type InventoryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
}

type ServiceParams struct {
	Repo      *Repository
	Inventory InventoryReader
}

// Service manages third-party owner contacts.
type Service interface {
	GetAll(ctx context.Context) ([]Partner, error)
	GetByName(ctx context.Context, name string) (*Partner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	Create(ctx context.Context, input CreateInput) (CreateResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (Result, error)
	Remove(ctx context.Context, id uuid.UUID) (Result, error)
	UpdateAllEmails(ctx context.Context, email string) (EmailsResult, error)
	GetContactForInventory(ctx context.Context, inventoryID uuid.UUID) (ContactLookup, error)
}

type service struct {
	repo      *Repository
	inventory InventoryReader
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partners repo is required")
	}
	if params.Inventory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory reader is required")
	}
	return &service{repo: params.Repo, inventory: params.Inventory}, nil
}

func (s *service) GetAll(ctx context.Context) ([]Partner, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partners")
	}
	out := make([]Partner, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPartner(row))
	}
	return out, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el nombre es obligatorio")
	}
	return s.optional(s.repo.FindByName(ctx, name))
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Partner, error) {
	return s.optional(s.repo.FindByID(ctx, id))
}

func (s *service) optional(row *models.Partner, err error) (*Partner, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	partner := toPartner(*row)
	return &partner, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validate.Struct(input); err != nil {
		return CreateResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "datos de partner inválidos")
	}

	row := &models.Partner{Name: input.Name, Email: input.Email, Phone: input.Phone, Notes: input.Notes}
	if err := s.repo.Create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return CreateResult{}, duplicateName(input.Name)
		}
		return CreateResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner")
	}
	return CreateResult{PartnerID: row.ID}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (Result, error) {
	input.Name = trimmed(input.Name)
	input.Email = trimmed(input.Email)
	if err := validate.Struct(input); err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "datos de partner inválidos")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) == 0 {
		if _, err := s.mustExist(ctx, id); err != nil {
			return Result{}, err
		}
		return Result{Success: true}, nil
	}

	ok, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return Result{}, duplicateName(updates["name"])
		}
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update partner")
	}
	if !ok {
		return Result{}, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return Result{Success: true}, nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) (Result, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete partner")
	}
	if !ok {
		return Result{}, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return Result{Success: true}, nil
}

func (s *service) UpdateAllEmails(ctx context.Context, email string) (EmailsResult, error) {
	input := EmailsInput{NewEmail: strings.TrimSpace(email)}
	if err := validate.Struct(input); err != nil {
		return EmailsResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "email inválido")
	}
	updated, err := s.repo.UpdateAllEmails(ctx, input.NewEmail)
	if err != nil {
		return EmailsResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update partner emails")
	}
	return EmailsResult{Success: true, PartnersUpdated: updated, NewEmail: input.NewEmail}, nil
}

// GetContactForInventory finds the partner whose name matches the support owner.
func (s *service) GetContactForInventory(ctx context.Context, inventoryID uuid.UUID) (ContactLookup, error) {
	item, err := s.inventory.FindByID(ctx, inventoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContactLookup{Reason: "Soporte no encontrado"}, nil
		}
		return ContactLookup{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}
	if !item.IsThirdParty() {
		return ContactLookup{Reason: "Soporte propio, no requiere contacto externo"}, nil
	}

	partner, err := s.repo.FindByName(ctx, item.Owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContactLookup{Reason: "No se encontró contacto para el partner: " + item.Owner}, nil
		}
		return ContactLookup{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}

	return ContactLookup{
		Found:             true,
		Partner:           &Contact{Name: partner.Name, Email: partner.Email, Phone: partner.Phone},
		InventoryCode:     item.Code,
		InventoryLocation: item.Address,
	}, nil
}

func (s *service) mustExist(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	return row, nil
}

func duplicateName(name any) error {
	return pkgerrors.New(pkgerrors.CodeConflict, "ya existe un partner con ese nombre").
		WithDetails(map[string]any{"name": name})
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
