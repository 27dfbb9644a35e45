// api/audit/repository.go
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository is an append-only login-history store.
type Repository interface {
	Record(ctx context.Context, entry LoginHistory) error
	Query(ctx context.Context, from, to time.Time, principalID string) ([]LoginHistory, error)
}

// GormRepository persists login history in the primary database.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Record(ctx context.Context, entry LoginHistory) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *GormRepository) Query(ctx context.Context, from, to time.Time, principalID string) ([]LoginHistory, error) {
	var entries []LoginHistory
	q := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", from, to).
		Order("timestamp DESC")
	if principalID != "" {
		q = q.Where("principal_id = ?", principalID)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
