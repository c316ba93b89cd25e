package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	UserTypeFarmer = "farmer"
	UserTypeDriver = "driver"
)

// Farmer is a renter identity, created lazily on first OTP verification.
type Farmer struct {
	gorm.Model
	Name           string    `json:"name"`
	Phone          string    `json:"phone" gorm:"uniqueIndex;not null"`
	Address        string    `json:"address"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	FarmSize       string    `json:"farmSize"`
	Crops          string    `json:"crops"`
	AdditionalInfo string    `json:"additionalInfo"`
	Language       string    `json:"language" gorm:"default:'en'"`
	MemberSince    time.Time `json:"memberSince" gorm:"autoCreateTime"`
	TotalBookings  int       `json:"totalBookings" gorm:"default:0"`
	AvgRating      float64   `json:"avgRating" gorm:"default:0"`
}

func (Farmer) TableName() string {
	return "farmers"
}
