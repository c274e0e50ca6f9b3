package proposals

import (
	"context"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists proposals and the staging slots that precede them.
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

// UpsertDraft replaces whatever sits in the draft's slot.
func (r *Repository) UpsertDraft(ctx context.Context, draft *models.ProposalDraft) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"proposal_id", "client_name", "item_count", "total_neto", "total_bruto", "payload", "created_at", "updated_at"}),
		}).
		Create(draft).Error
}

func (r *Repository) FindDraft(ctx context.Context, kind enums.DraftKind) (*models.ProposalDraft, error) {
	var draft models.ProposalDraft
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *Repository) FindDraftByProposalID(ctx context.Context, id uuid.UUID) (*models.ProposalDraft, error) {
	var draft models.ProposalDraft
	if err := r.db.WithContext(ctx).Where("proposal_id = ?", id).First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// Create inserts the proposal and its items atomically.
func (r *Repository) Create(ctx context.Context, proposal *models.Proposal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(proposal).Error
	})
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&proposal).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// List returns the newest proposals first, optionally narrowed to one status.
func (r *Repository) List(ctx context.Context, status enums.ProposalStatus, limit int) ([]models.Proposal, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var proposals []models.Proposal
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&proposals).Error
	return proposals, err
}

// Update patches columns and reports whether the proposal existed.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Proposal{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteAll wipes stored proposals, their items and both staging slots. It
// returns how many proposals and drafts were removed.
func (r *Repository) DeleteAll(ctx context.Context) (proposals, drafts int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.ProposalItem{}).Error; err != nil {
			return err
		}
		res := all.Delete(&models.Proposal{})
		if res.Error != nil {
			return res.Error
		}
		proposals = res.RowsAffected
		res = all.Delete(&models.ProposalDraft{})
		if res.Error != nil {
			return res.Error
		}
		drafts = res.RowsAffected
		return nil
	})
	return proposals, drafts, err
}
