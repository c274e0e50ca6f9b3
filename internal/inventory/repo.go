package inventory

import (
	"context"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Filter narrows catalog listings. Zero values disable a criterion.
type Filter struct {
	Zone          string
	Type          enums.SupportType
	Owner         string
	ThirdParty    bool
	OnlyAvailable bool
	MaxPrice      decimal.Decimal
}

// Repository persists inventory items.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a repository to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByCode returns the first item with the given code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).Where("code = ?", code).Order("created_at ASC").First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads the items that exist among ids, in no particular order.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.InventoryItem, error) {
	if len(ids) == 0 {
		return []models.InventoryItem{}, nil
	}
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

// FindByCodes loads the items that exist among codes, in no particular order.
func (r *Repository) FindByCodes(ctx context.Context, codes []string) ([]models.InventoryItem, error) {
	if len(codes) == 0 {
		return []models.InventoryItem{}, nil
	}
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&items).Error
	return items, err
}

// List returns items matching every set criterion, ordered by code.
func (r *Repository) List(ctx context.Context, filter Filter) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryItem{})
	if filter.Zone != "" {
		query = query.Where("zone = ?", filter.Zone)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}
	if filter.ThirdParty {
		query = query.Where("owner <> ?", enums.GlobalOwner)
	}
	if filter.OnlyAvailable {
		query = query.Where("status = ?", enums.InventoryStatusAvailable)
	}
	if filter.MaxPrice.IsPositive() {
		query = query.Where("rental_monthly <= ?", filter.MaxPrice)
	}

	var items []models.InventoryItem
	err := query.Order("code ASC").Find(&items).Error
	return items, err
}

func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *Repository) CreateBatch(ctx context.Context, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// UpdateVersioned applies updates only if the row still has the expected
// version, bumping it. It reports whether the row was written.
func (r *Repository) UpdateVersioned(ctx context.Context, id uuid.UUID, version int, updates map[string]any) (bool, error) {
	values := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	values["version"] = gorm.Expr("version + 1")

	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND version = ?", id, version).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Count(&count).Error
	return count, err
}

// DeleteAll wipes the catalog. Only the seed tooling calls this.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.InventoryItem{})
	return res.RowsAffected, res.Error
}
