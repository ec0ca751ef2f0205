package database

import (
	"log"

	"github.com/voltride/rental-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Station{},
		&models.Vehicle{},
		&models.Booking{},
		&models.Penalty{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: a vehicle carries at most one live booking
	// (pending/approved/ongoing) at any time
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicle_live_booking
		ON bookings (vehicle_id)
		WHERE status IN ('pending', 'approved', 'ongoing')
	`)

	// Counter can never be negative or exceed capacity even if a write
	// slips past the guarded update
	db.Exec(`
		ALTER TABLE stations DROP CONSTRAINT IF EXISTS chk_station_available;
		ALTER TABLE stations ADD CONSTRAINT chk_station_available
		CHECK (available_evs >= 0 AND available_evs <= capacity)
	`)

	return db
}
