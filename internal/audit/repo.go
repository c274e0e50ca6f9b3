package audit

import (
	"context"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/angelmondragon/ooh-agent-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists audit log entries. Rows are never updated.
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

func (r *Repository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListRecent returns up to limit entries older than the cursor, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if cursor != nil {
		at := cursor.At.UTC()
		query = query.Where("occurred_at < ? OR (occurred_at = ? AND id < ?)", at, at, cursor.ID)
	}

	var rows []models.AuditLog
	err := query.
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListByEventType(ctx context.Context, eventType enums.AuditEventType, limit int) ([]models.AuditLog, error) {
	var rows []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("event_type = ?", eventType).
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListBetween returns entries with start <= occurred_at <= end, oldest first.
func (r *Repository) ListBetween(ctx context.Context, start, end time.Time) ([]models.AuditLog, error) {
	var rows []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at <= ?", start.UTC(), end.UTC()).
		Order("occurred_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&count).Error
	return count, err
}

// DeleteAll wipes the log. Only the seed tooling calls this.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
