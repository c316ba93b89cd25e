package database

import (
	"github.com/farmate/farmate-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.Farmer{},
		&models.Driver{},
		&models.Vehicle{},
		&models.VehicleImage{},
		&models.Booking{},
	)
	if err != nil {
		return err
	}

	// The remaining statements are postgres-only; the sqlite test database
	// relies on application-level validation instead.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// Drivers are created with license and aadhar empty, so uniqueness only
	// applies once the fields are filled in.
	partialIndexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_drivers_license_number ON drivers (license_number) WHERE license_number <> ''`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_drivers_aadhar_number ON drivers (aadhar_number) WHERE aadhar_number <> ''`,
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	// Pin the status enums at the database level as well.
	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
	if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'in-progress', 'completed', 'cancelled'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_payment_status_check`)
	if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_payment_status_check CHECK (payment_status IN ('pending', 'paid', 'failed', 'refunded'))`).Error; err != nil {
		return err
	}

	return nil
}
