package repository

import (
	"context"

	"github.com/Smirnov-studio/property-store/internal/model"

	"gorm.io/gorm"
)

// CalculationRepository persists calculator audit rows. Called from the worker
// pool, never from a request path.
type CalculationRepository interface {
	Create(ctx context.Context, c *model.CalculationHistory) error
}

type calculationRepo struct{ db *gorm.DB }

func NewCalculationRepository(db *gorm.DB) CalculationRepository {
	return &calculationRepo{db: db}
}

func (r *calculationRepo) Create(ctx context.Context, c *model.CalculationHistory) error {
	return r.db.WithContext(ctx).Create(c).Error
}
