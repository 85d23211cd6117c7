package repository

import (
	"context"

	"github.com/Smirnov-studio/property-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceHistoryRepository reads the append-only price audit log. Writes happen
// only inside ComplexRepository.Update — there is deliberately no Create here.
type PriceHistoryRepository interface {
	ListByComplex(ctx context.Context, complexID uuid.UUID) ([]model.PriceHistory, error)
}

type priceHistoryRepo struct{ db *gorm.DB }

func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepo{db: db}
}

// ListByComplex returns the change log newest-first, with the changing actor
// preloaded so the handler can expose their email.
func (r *priceHistoryRepo) ListByComplex(ctx context.Context, complexID uuid.UUID) ([]model.PriceHistory, error) {
	var rows []model.PriceHistory
	err := r.db.WithContext(ctx).
		Where("complex_id = ?", complexID).
		Order("change_date DESC").
		Preload("Actor").
		Find(&rows).Error
	return rows, err
}
