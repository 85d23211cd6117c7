package model

import (
	"time"

	"github.com/google/uuid"
)

// Construction stages a complex moves through.
const (
	StagePlanning     = "planning"
	StageConstruction = "construction"
	StageCompleted    = "completed"
)

// Complex represents one residential development. It is the root of the
// catalog aggregate: exactly one current ComplexPrice, many amenities via the
// complex_amenities join table, many ApartmentLayouts. All writes to the
// aggregate go through ComplexRepository so that price/amenity invariants hold.
type Complex struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"index;not null"`
	Description       string    `gorm:"not null"`
	Location          string    `gorm:"not null"`
	Address           string
	Developer         string
	ConstructionStage string     `gorm:"type:varchar(20);not null;index"`
	DeliveryDate      *time.Time `gorm:"type:date"`
	IsPublished       bool       `gorm:"not null;default:true"`
	CreatedBy         *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time  `gorm:"index"`
	UpdatedAt         time.Time

	Price     *ComplexPrice     `gorm:"foreignKey:ComplexID;constraint:OnDelete:CASCADE"`
	Amenities []Amenity         `gorm:"many2many:complex_amenities;constraint:OnDelete:CASCADE"`
	Layouts   []ApartmentLayout `gorm:"foreignKey:ComplexID;constraint:OnDelete:CASCADE"`
	Creator   *User             `gorm:"foreignKey:CreatedBy"`
}

func (Complex) TableName() string { return "residential_complexes" }
