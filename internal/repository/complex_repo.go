package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Smirnov-studio/property-store/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrUnknownAmenity is returned (under the strict amenity policy) when a
// payload names an amenity that does not exist. The whole transaction rolls
// back in that case.
var ErrUnknownAmenity = errors.New("unknown amenity")

// ComplexWrite carries the full aggregate payload for create and update.
type ComplexWrite struct {
	Name              string
	Description       string
	Location          string
	Address           string
	Developer         string
	ConstructionStage string
	DeliveryDate      *time.Time
	PricePerSquare    decimal.Decimal
	Amenities         []string
}

// ComplexListQuery describes the public catalog query: published complexes
// only, optional stage equality filter, optional inclusive price range
// (applied only when both bounds are present), offset pagination.
type ComplexListQuery struct {
	Stage    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	Limit    int
}

// ComplexRepository is the sole writer of the complex aggregate
// (complex + price + amenity links + layouts). Services depend on this
// interface, not on the concrete GORM implementation, enabling clean unit
// testing via stubs. Not-found is signaled with gorm.ErrRecordNotFound.
type ComplexRepository interface {
	Create(ctx context.Context, data ComplexWrite, actorID uuid.UUID) (*model.Complex, error)
	Update(ctx context.Context, id uuid.UUID, data ComplexWrite, actorID uuid.UUID) (*model.Complex, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Complex, error)
	// FindWithPrice resolves only the complex and its current price — the
	// calculator's read path. Complexes without a price row are not-found,
	// matching the catalog's inner-join semantics.
	FindWithPrice(ctx context.Context, id uuid.UUID) (*model.Complex, error)
	List(ctx context.Context, q ComplexListQuery) ([]model.Complex, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddLayout(ctx context.Context, l *model.ApartmentLayout) error
	RemoveLayout(ctx context.Context, layoutID uuid.UUID) error

	// DB exposes the underlying *gorm.DB so integration tests can seed data.
	DB() *gorm.DB
}

type complexRepo struct {
	db     *gorm.DB
	strict bool // amenity policy: fail on unknown names instead of skipping
}

func NewComplexRepository(db *gorm.DB, strictAmenities bool) ComplexRepository {
	return &complexRepo{db: db, strict: strictAmenities}
}

// priceWrites decides what an incoming price means for the price row and the
// audit log: no prior price → write the row, nothing to audit; unchanged →
// no writes at all; changed → write the row and append exactly one history row.
func priceWrites(current *decimal.Decimal, incoming decimal.Decimal) (updateRow, appendHistory bool) {
	if current == nil {
		return true, false
	}
	if current.Equal(incoming) {
		return false, false
	}
	return true, true
}

// Create inserts the complex, its single price row and its amenity links as
// one atomic unit. Any failure rolls back everything — readers never observe
// a partial aggregate.
func (r *complexRepo) Create(ctx context.Context, data ComplexWrite, actorID uuid.UUID) (*model.Complex, error) {
	cx := &model.Complex{
		Name:              data.Name,
		Description:       data.Description,
		Location:          data.Location,
		Address:           data.Address,
		Developer:         data.Developer,
		ConstructionStage: data.ConstructionStage,
		DeliveryDate:      data.DeliveryDate,
		IsPublished:       true,
		CreatedBy:         &actorID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cx).Error; err != nil {
			return err
		}
		price := &model.ComplexPrice{ComplexID: cx.ID, PricePerSquare: data.PricePerSquare}
		if err := tx.Create(price).Error; err != nil {
			return err
		}
		cx.Price = price
		return r.linkAmenities(tx, cx.ID, data.Amenities)
	})
	if err != nil {
		return nil, err
	}
	return cx, nil
}

// Update mutates the aggregate as one atomic unit: descriptive fields, the
// price row (with a price_history append iff the value changed and a prior
// value existed), and a full replace of the amenity link set. If no row with
// id exists, gorm.ErrRecordNotFound is returned without side effects.
func (r *complexRepo) Update(ctx context.Context, id uuid.UUID, data ComplexWrite, actorID uuid.UUID) (*model.Complex, error) {
	var cx model.Complex

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cx, "id = ?", id).Error; err != nil {
			return err
		}

		cx.Name = data.Name
		cx.Description = data.Description
		cx.Location = data.Location
		cx.Address = data.Address
		cx.Developer = data.Developer
		cx.ConstructionStage = data.ConstructionStage
		cx.DeliveryDate = data.DeliveryDate
		if err := tx.Save(&cx).Error; err != nil {
			return err
		}

		var price model.ComplexPrice
		perr := tx.Where("complex_id = ?", id).First(&price).Error
		var current *decimal.Decimal
		switch {
		case perr == nil:
			current = &price.PricePerSquare
		case errors.Is(perr, gorm.ErrRecordNotFound):
			current = nil
		default:
			return perr
		}

		updateRow, appendHistory := priceWrites(current, data.PricePerSquare)
		if updateRow {
			if current == nil {
				if err := tx.Create(&model.ComplexPrice{ComplexID: id, PricePerSquare: data.PricePerSquare}).Error; err != nil {
					return err
				}
			} else {
				old := price.PricePerSquare
				if err := tx.Model(&price).Update("price_per_square", data.PricePerSquare).Error; err != nil {
					return err
				}
				if appendHistory {
					h := &model.PriceHistory{
						ComplexID: id,
						OldPrice:  old,
						NewPrice:  data.PricePerSquare,
						ChangedBy: &actorID,
					}
					if err := tx.Create(h).Error; err != nil {
						return err
					}
				}
			}
		}

		// Full replace — links not re-supplied must not survive the update.
		if err := tx.Exec("DELETE FROM complex_amenities WHERE complex_id = ?", id).Error; err != nil {
			return err
		}
		return r.linkAmenities(tx, id, data.Amenities)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// uniqueNames drops repeated entries, keeping first-seen order. A payload
// listing the same amenity twice must produce one link, not a key violation.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// linkAmenities resolves each name against the amenities table and inserts a
// join row. Unresolved names are skipped under the default policy; the strict
// policy turns them into ErrUnknownAmenity, failing the whole transaction.
func (r *complexRepo) linkAmenities(tx *gorm.DB, complexID uuid.UUID, names []string) error {
	for _, name := range uniqueNames(names) {
		res := tx.Exec(
			`INSERT INTO complex_amenities (complex_id, amenity_id)
			 SELECT ?, id FROM amenities WHERE name = ?`,
			complexID, name,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 && r.strict {
			return fmt.Errorf("%w: %q", ErrUnknownAmenity, name)
		}
	}
	return nil
}

func (r *complexRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Complex, error) {
	var cx model.Complex
	err := r.db.WithContext(ctx).
		Preload("Price").
		Preload("Amenities").
		Preload("Layouts").
		First(&cx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cx, nil
}

func (r *complexRepo) FindWithPrice(ctx context.Context, id uuid.UUID) (*model.Complex, error) {
	var cx model.Complex
	err := r.db.WithContext(ctx).Preload("Price").First(&cx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if cx.Price == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &cx, nil
}

func (r *complexRepo) List(ctx context.Context, q ComplexListQuery) ([]model.Complex, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Complex{}).
		Where("residential_complexes.is_published = true")

	if q.Stage != "" {
		base = base.Where("residential_complexes.construction_stage = ?", q.Stage)
	}
	if q.MinPrice != nil && q.MaxPrice != nil {
		base = base.
			Joins("JOIN complex_prices cp ON cp.complex_id = residential_complexes.id").
			Where("cp.price_per_square BETWEEN ? AND ?", *q.MinPrice, *q.MaxPrice)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Complex
	offset := (q.Page - 1) * q.Limit
	err := base.
		Order("residential_complexes.created_at DESC").
		Limit(q.Limit).
		Offset(offset).
		Preload("Price").
		Preload("Amenities").
		Preload("Layouts").
		Find(&rows).Error
	return rows, total, err
}

func (r *complexRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Dependent price/link/layout/history rows go with the FK cascade.
	res := r.db.WithContext(ctx).Delete(&model.Complex{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *complexRepo) AddLayout(ctx context.Context, l *model.ApartmentLayout) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *complexRepo) RemoveLayout(ctx context.Context, layoutID uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ApartmentLayout{}, "id = ?", layoutID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *complexRepo) DB() *gorm.DB { return r.db }
