package model

import (
	"github.com/google/uuid"
)

// Amenity is a named facility shared across complexes (parking, playground…).
// The set is seeded at startup; catalog payloads reference amenities by name.
type Amenity struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null"`
}

func (Amenity) TableName() string { return "amenities" }
