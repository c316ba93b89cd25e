package models

import (
	"time"

	"gorm.io/gorm"
)

// Driver owns the listed vehicles and accumulates trip and earnings totals.
type Driver struct {
	gorm.Model
	Name          string    `json:"name"`
	Phone         string    `json:"phone" gorm:"uniqueIndex;not null"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	// License and aadhar numbers are globally unique once set; drivers are
	// created with both empty, so uniqueness is a partial index in migrations.
	LicenseNumber string    `json:"licenseNumber"`
	AadharNumber  string    `json:"aadharNumber"`
	Vehicles      []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:DriverID"`
	TotalTrips    int       `json:"totalTrips" gorm:"default:0"`
	TotalEarnings float64   `json:"totalEarnings" gorm:"default:0"`
	RatingAverage float64   `json:"ratingAverage" gorm:"default:0"`
	RatingCount   int       `json:"ratingCount" gorm:"default:0"`
	IsAvailable   bool      `json:"isAvailable" gorm:"default:true"`
	MemberSince   time.Time `json:"memberSince" gorm:"autoCreateTime"`
}

func (Driver) TableName() string {
	return "drivers"
}
