package utils

import (
	"fmt"

	"github.com/farmate/farmate-backend/internal/models"
)

// Acre work is quoted as machine-hours at the hourly rate.
const hoursPerAcre = 2.0

// CalculateBookingPrice computes a rental quote for a vehicle. The quoted
// price is advisory; bookings store whatever total the caller supplied.
func CalculateBookingPrice(vehicle *models.Vehicle, durationType string, quantity float64) (float64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive")
	}

	switch durationType {
	case models.DurationHourly:
		return vehicle.HourlyRate * quantity, nil
	case models.DurationDaily:
		return vehicle.DailyRate * quantity, nil
	case models.DurationAcre:
		return vehicle.HourlyRate * hoursPerAcre * quantity, nil
	}
	return 0, fmt.Errorf("unknown duration type: %s", durationType)
}
