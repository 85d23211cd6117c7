package infra

import (
	"fmt"

	"github.com/Smirnov-studio/property-store/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (supporting indexes, amenity seed rows).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema and seed data. Also used by the
// integration test suite against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Complex{},
		&model.ComplexPrice{},
		&model.Amenity{},
		&model.ApartmentLayout{},
		&model.PriceHistory{},
		&model.CalculationHistory{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return seedAmenities(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not produce.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// the price-history endpoint always filters by complex and sorts by date
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_price_history_complex_date') THEN
		    CREATE INDEX idx_price_history_complex_date
		        ON price_history (complex_id, change_date DESC);
		  END IF;
		END $$`,
		// catalog range filter hits this column on every priced listing query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_complex_prices_value') THEN
		    CREATE INDEX idx_complex_prices_value
		        ON complex_prices (price_per_square);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// seedAmenities inserts the fixture amenity set. Payloads reference amenities
// by name; names missing from this table are skipped or rejected per policy.
func seedAmenities(db *gorm.DB) error {
	names := []string{
		"parking",
		"underground parking",
		"playground",
		"fitness center",
		"swimming pool",
		"security",
		"concierge",
		"kids club",
		"winter garden",
	}
	for _, name := range names {
		if err := db.Exec(
			`INSERT INTO amenities (name) VALUES (?) ON CONFLICT (name) DO NOTHING`,
			name,
		).Error; err != nil {
			return fmt.Errorf("seed amenity %q: %w", name, err)
		}
	}
	return nil
}
