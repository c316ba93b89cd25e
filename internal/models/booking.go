package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsValidBookingStatus reports whether s is one of the five booking states.
// Transitions are not validated against the current state; any status in the
// enum is accepted verbatim.
func IsValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

const (
	BookingTypeInstant   = "instant"
	BookingTypeScheduled = "scheduled"

	DurationHourly = "hourly"
	DurationDaily  = "daily"
	DurationAcre   = "acre"

	PaymentMethodUPI    = "upi"
	PaymentMethodCOD    = "cod"
	PaymentMethodWallet = "wallet"
)

// Booking reserves one Vehicle for one Farmer, serviced by one Driver.
// A booking is created once, mutated only through status transitions, and
// never deleted. Payment status is tracked independently of booking status.
type Booking struct {
	gorm.Model
	FarmerID       uint          `json:"farmerId" gorm:"not null;index"`
	Farmer         *Farmer       `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
	DriverID       uint          `json:"driverId" gorm:"not null;index"`
	Driver         *Driver       `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	VehicleID      uint          `json:"vehicleId" gorm:"not null;index"`
	Vehicle        *Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	BookingType    string        `json:"bookingType" gorm:"not null"`
	StartDate      time.Time     `json:"startDate" gorm:"not null"`
	EndDate        time.Time     `json:"endDate" gorm:"not null"`
	DurationType   string        `json:"durationType" gorm:"not null"`
	Quantity       float64       `json:"quantity" gorm:"not null"`
	TotalPrice     float64       `json:"totalPrice" gorm:"not null"`
	Status         BookingStatus `json:"status" gorm:"default:'pending'"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" gorm:"default:'pending'"`
	PaymentMethod  string        `json:"paymentMethod" gorm:"not null"`
	PickupAddress  string        `json:"pickupAddress"`
	PickupLat      float64       `json:"pickupLat"`
	PickupLng      float64       `json:"pickupLng"`
	DropoffAddress string        `json:"dropoffAddress"`
	DropoffLat     float64       `json:"dropoffLat"`
	DropoffLng     float64       `json:"dropoffLng"`
	Notes          string        `json:"notes"`
}

func (Booking) TableName() string {
	return "bookings"
}
