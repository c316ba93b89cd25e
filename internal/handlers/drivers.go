package handlers

import (
	"strconv"

	"github.com/farmate/farmate-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDriver returns a driver profile with their listed vehicles.
func GetDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.Preload("Vehicles").First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Driver not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "driver": driver})
	}
}

// UpdateDriver updates only the fields supplied in the request body.
func UpdateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name          *string  `json:"name"`
			Email         *string  `json:"email"`
			Address       *string  `json:"address"`
			Latitude      *float64 `json:"latitude"`
			Longitude     *float64 `json:"longitude"`
			LicenseNumber *string  `json:"licenseNumber"`
			AadharNumber  *string  `json:"aadharNumber"`
			IsAvailable   *bool    `json:"isAvailable"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Driver not found"})
			return
		}

		if input.Name != nil {
			driver.Name = *input.Name
		}
		if input.Email != nil {
			driver.Email = *input.Email
		}
		if input.Address != nil {
			driver.Address = *input.Address
		}
		if input.Latitude != nil {
			driver.Latitude = *input.Latitude
		}
		if input.Longitude != nil {
			driver.Longitude = *input.Longitude
		}
		if input.LicenseNumber != nil {
			driver.LicenseNumber = *input.LicenseNumber
		}
		if input.AadharNumber != nil {
			driver.AadharNumber = *input.AadharNumber
		}
		if input.IsAvailable != nil {
			driver.IsAvailable = *input.IsAvailable
		}

		if err := db.Save(&driver).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(200, gin.H{"success": true, "driver": driver})
	}
}

type AddVehicleInput struct {
	Type               string  `json:"type" binding:"required"`
	Brand              string  `json:"brand" binding:"required"`
	Model              string  `json:"model" binding:"required"`
	Year               int     `json:"year" binding:"required"`
	RegistrationNumber string  `json:"registrationNumber" binding:"required"`
	HourlyRate         float64 `json:"hourlyRate" binding:"required"`
	DailyRate          float64 `json:"dailyRate" binding:"required"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Features           string  `json:"features"`
	Description        string  `json:"description"`
}

// AddVehicle creates a listing owned by the driver in the path. New listings
// start available.
func AddVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid driver id"})
			return
		}

		var input AddVehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Missing required fields"})
			return
		}

		// Several types contain spaces, so the enum check lives here rather
		// than in a binding tag.
		if !models.IsValidVehicleType(input.Type) {
			c.JSON(400, gin.H{"success": false, "message": "Invalid vehicle type"})
			return
		}

		var driver models.Driver
		if err := db.First(&driver, uint(driverID)).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Driver not found"})
			return
		}

		vehicle := models.Vehicle{
			DriverID:           driver.ID,
			Type:               models.VehicleType(input.Type),
			Brand:              input.Brand,
			ModelName:          input.Model,
			Year:               input.Year,
			RegistrationNumber: input.RegistrationNumber,
			HourlyRate:         input.HourlyRate,
			DailyRate:          input.DailyRate,
			Availability:       true,
			Latitude:           input.Latitude,
			Longitude:          input.Longitude,
			Features:           input.Features,
			Description:        input.Description,
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(201, gin.H{"success": true, "vehicle": vehicle})
	}
}
