package models

import (
	"gorm.io/gorm"
)

// VehicleType is the closed set of equipment kinds a driver can list.
type VehicleType string

const (
	VehicleTypeTractor          VehicleType = "Tractor"
	VehicleTypeRotavator        VehicleType = "Rotavator"
	VehicleTypeCultivator       VehicleType = "Cultivator"
	VehicleTypeHarvester        VehicleType = "Harvester"
	VehicleTypePowerTiller      VehicleType = "Power Tiller"
	VehicleTypeWaterTanker      VehicleType = "Water Tanker"
	VehicleTypeMiniTruck        VehicleType = "Mini Truck"
	VehicleTypePloughingMachine VehicleType = "Ploughing Machine"
	VehicleTypeSprayer          VehicleType = "Sprayer"
	VehicleTypeOther            VehicleType = "Other"
)

// VehicleTypes returns every listable equipment kind.
func VehicleTypes() []VehicleType {
	return []VehicleType{
		VehicleTypeTractor,
		VehicleTypeRotavator,
		VehicleTypeCultivator,
		VehicleTypeHarvester,
		VehicleTypePowerTiller,
		VehicleTypeWaterTanker,
		VehicleTypeMiniTruck,
		VehicleTypePloughingMachine,
		VehicleTypeSprayer,
		VehicleTypeOther,
	}
}

func IsValidVehicleType(t string) bool {
	for _, vt := range VehicleTypes() {
		if string(vt) == t {
			return true
		}
	}
	return false
}

// Vehicle is a piece of equipment listed by exactly one driver. The
// availability flag doubles as a coarse reservation lock: bookings flip it
// to false and only cancellation flips it back.
type Vehicle struct {
	gorm.Model
	DriverID           uint           `json:"driverId" gorm:"not null;index"`
	Driver             *Driver        `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Type               VehicleType    `json:"type" gorm:"not null"`
	Brand              string         `json:"brand"`
	ModelName          string         `json:"model" gorm:"column:model"`
	Year               int            `json:"year"`
	RegistrationNumber string         `json:"registrationNumber" gorm:"uniqueIndex"`
	HourlyRate         float64        `json:"hourlyRate"`
	DailyRate          float64        `json:"dailyRate"`
	Availability       bool           `json:"availability" gorm:"default:true"`
	Latitude           float64        `json:"latitude"`
	Longitude          float64        `json:"longitude"`
	Images             []VehicleImage `json:"images,omitempty" gorm:"foreignKey:VehicleID"`
	Features           string         `json:"features"`
	Description        string         `json:"description"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// VehicleImage is an uploaded photo or document for a listing.
type VehicleImage struct {
	gorm.Model
	VehicleID uint   `json:"vehicleId" gorm:"not null;index"`
	URL       string `json:"url" gorm:"not null"`
}

func (VehicleImage) TableName() string {
	return "vehicle_images"
}
