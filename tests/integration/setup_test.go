//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/voltride/rental-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "rental_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	dropTables()

	if err := testDB.AutoMigrate(
		&models.Customer{},
		&models.Station{},
		&models.Vehicle{},
		&models.Booking{},
		&models.Penalty{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicle_live_booking
		ON bookings (vehicle_id)
		WHERE status IN ('pending', 'approved', 'ongoing')
	`)

	code := m.Run()

	dropTables()

	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS penalties")
	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS vehicles")
	testDB.Exec("DROP TABLE IF EXISTS stations")
	testDB.Exec("DROP TABLE IF EXISTS customers")
}

func cleanTables() {
	testDB.Exec("DELETE FROM penalties")
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM vehicles")
	testDB.Exec("DELETE FROM stations")
	testDB.Exec("DELETE FROM customers")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
