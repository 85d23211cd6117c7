package repository

import (
	"context"

	"github.com/Smirnov-studio/property-store/internal/model"

	"gorm.io/gorm"
)

type AmenityRepository interface {
	List(ctx context.Context) ([]model.Amenity, error)
}

type amenityRepo struct{ db *gorm.DB }

func NewAmenityRepository(db *gorm.DB) AmenityRepository { return &amenityRepo{db: db} }

func (r *amenityRepo) List(ctx context.Context) ([]model.Amenity, error) {
	var rows []model.Amenity
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}
