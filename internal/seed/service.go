// Package seed loads and wipes the demo catalog used by local environments.
package seed

import (
	"context"

	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	"github.com/angelmondragon/ooh-agent-backend/internal/inventory"
	"github.com/angelmondragon/ooh-agent-backend/internal/partners"
	"github.com/angelmondragon/ooh-agent-backend/internal/proposals"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	inventoryExists = "El inventario ya tiene datos. Usa clearInventory primero si quieres reiniciar."
	partnersExist   = "Los partners ya tienen datos. Usa clearPartners primero si quieres reiniciar."
	dataExists      = "Ya existen datos en la base de datos. Usa clearAll primero para reiniciar."
)

type InventoryResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ItemsCreated int    `json:"itemsCreated"`
}

type PartnersResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	PartnersCreated int    `json:"partnersCreated"`
}

type AllResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ItemsCreated    int    `json:"itemsCreated"`
	PartnersCreated int    `json:"partnersCreated"`
}

type ClearInventoryResult struct {
	Success      bool  `json:"success"`
	ItemsDeleted int64 `json:"itemsDeleted"`
}

type ClearPartnersResult struct {
	Success         bool  `json:"success"`
	PartnersDeleted int64 `json:"partnersDeleted"`
}

type Deleted struct {
	Inventory int64 `json:"inventory"`
	Partners  int64 `json:"partners"`
	Proposals int64 `json:"proposals"`
	Drafts    int64 `json:"drafts"`
	AuditLogs int64 `json:"auditLogs"`
}

type ClearAllResult struct {
	Success bool    `json:"success"`
	Deleted Deleted `json:"deleted"`
}

type Service interface {
	SeedInventory(ctx context.Context) (InventoryResult, error)
	SeedPartners(ctx context.Context) (PartnersResult, error)
	SeedAll(ctx context.Context) (AllResult, error)
	ClearInventory(ctx context.Context) (ClearInventoryResult, error)
	ClearPartners(ctx context.Context) (ClearPartnersResult, error)
	ClearAll(ctx context.Context) (ClearAllResult, error)
}

type ServiceParams struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

type service struct {
	db   *gorm.DB
	logg *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{db: params.DB, logg: logg}, nil
}

type repos struct {
	inventory *inventory.Repository
	partners  *partners.Repository
	proposals *proposals.Repository
	audit     *audit.Repository
}

func reposFor(tx *gorm.DB) repos {
	return repos{
		inventory: inventory.NewRepository(tx),
		partners:  partners.NewRepository(tx),
		proposals: proposals.NewRepository(tx),
		audit:     audit.NewRepository(tx),
	}
}

func (s *service) SeedInventory(ctx context.Context) (InventoryResult, error) {
	var res InventoryResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		count, err := r.inventory.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			res = InventoryResult{Message: inventoryExists}
			return nil
		}
		rows := InventoryRows()
		if err := r.inventory.CreateBatch(ctx, rows); err != nil {
			return err
		}
		res = InventoryResult{Success: true, Message: "Inventario sembrado exitosamente", ItemsCreated: len(rows)}
		return nil
	})
	if err != nil {
		return InventoryResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed inventory")
	}
	s.logg.Info(s.logg.WithField(ctx, "items_created", res.ItemsCreated), "seed.inventory")
	return res, nil
}

func (s *service) SeedPartners(ctx context.Context) (PartnersResult, error) {
	var res PartnersResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		count, err := r.partners.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			res = PartnersResult{Message: partnersExist}
			return nil
		}
		rows := PartnerRows()
		if err := r.partners.CreateBatch(ctx, rows); err != nil {
			return err
		}
		res = PartnersResult{Success: true, Message: "Partners sembrados exitosamente", PartnersCreated: len(rows)}
		return nil
	})
	if err != nil {
		return PartnersResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed partners")
	}
	s.logg.Info(s.logg.WithField(ctx, "partners_created", res.PartnersCreated), "seed.partners")
	return res, nil
}

// SeedAll loads both tables, or nothing when either already has rows.
func (s *service) SeedAll(ctx context.Context) (AllResult, error) {
	var res AllResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		items, errItems := r.inventory.Count(ctx)
		partnerCount, errPartners := r.partners.Count(ctx)
		if err := pkgerrors.Join(pkgerrors.CodeInternal, "no se pudieron contar los registros", errItems, errPartners); err != nil {
			return err
		}
		if items > 0 || partnerCount > 0 {
			res = AllResult{Message: dataExists}
			return nil
		}

		inv := InventoryRows()
		if err := r.inventory.CreateBatch(ctx, inv); err != nil {
			return err
		}
		ps := PartnerRows()
		if err := r.partners.CreateBatch(ctx, ps); err != nil {
			return err
		}
		res = AllResult{
			Success:         true,
			Message:         "Base de datos sembrada exitosamente",
			ItemsCreated:    len(inv),
			PartnersCreated: len(ps),
		}
		return nil
	})
	if err != nil {
		return AllResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed database")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"items_created":    res.ItemsCreated,
		"partners_created": res.PartnersCreated,
	}), "seed.all")
	return res, nil
}

func (s *service) ClearInventory(ctx context.Context) (ClearInventoryResult, error) {
	deleted, err := inventory.NewRepository(s.db).DeleteAll(ctx)
	if err != nil {
		return ClearInventoryResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear inventory")
	}
	return ClearInventoryResult{Success: true, ItemsDeleted: deleted}, nil
}

func (s *service) ClearPartners(ctx context.Context) (ClearPartnersResult, error) {
	deleted, err := partners.NewRepository(s.db).DeleteAll(ctx)
	if err != nil {
		return ClearPartnersResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear partners")
	}
	return ClearPartnersResult{Success: true, PartnersDeleted: deleted}, nil
}

// ClearAll wipes every table the service owns in one transaction.
func (s *service) ClearAll(ctx context.Context) (ClearAllResult, error) {
	var deleted Deleted
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		var err error
		if deleted.Proposals, deleted.Drafts, err = r.proposals.DeleteAll(ctx); err != nil {
			return err
		}
		if deleted.Inventory, err = r.inventory.DeleteAll(ctx); err != nil {
			return err
		}
		if deleted.Partners, err = r.partners.DeleteAll(ctx); err != nil {
			return err
		}
		deleted.AuditLogs, err = r.audit.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return ClearAllResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear database")
	}
	s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
		"inventory":  deleted.Inventory,
		"partners":   deleted.Partners,
		"proposals":  deleted.Proposals,
		"audit_logs": deleted.AuditLogs,
	}), "seed.cleared")
	return ClearAllResult{Success: true, Deleted: deleted}, nil
}
