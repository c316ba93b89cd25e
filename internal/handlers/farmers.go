package handlers

import (
	"github.com/farmate/farmate-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetFarmer returns a farmer profile.
func GetFarmer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var farmer models.Farmer
		if err := db.First(&farmer, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Farmer not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "farmer": farmer})
	}
}

// UpdateFarmer updates only the fields supplied in the request body.
func UpdateFarmer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name           *string  `json:"name"`
			Address        *string  `json:"address"`
			Latitude       *float64 `json:"latitude"`
			Longitude      *float64 `json:"longitude"`
			FarmSize       *string  `json:"farmSize"`
			Crops          *string  `json:"crops"`
			AdditionalInfo *string  `json:"additionalInfo"`
			Language       *string  `json:"language"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		var farmer models.Farmer
		if err := db.First(&farmer, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Farmer not found"})
			return
		}

		if input.Name != nil {
			farmer.Name = *input.Name
		}
		if input.Address != nil {
			farmer.Address = *input.Address
		}
		if input.Latitude != nil {
			farmer.Latitude = *input.Latitude
		}
		if input.Longitude != nil {
			farmer.Longitude = *input.Longitude
		}
		if input.FarmSize != nil {
			farmer.FarmSize = *input.FarmSize
		}
		if input.Crops != nil {
			farmer.Crops = *input.Crops
		}
		if input.AdditionalInfo != nil {
			farmer.AdditionalInfo = *input.AdditionalInfo
		}
		if input.Language != nil {
			farmer.Language = *input.Language
		}

		if err := db.Save(&farmer).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(200, gin.H{"success": true, "farmer": farmer})
	}
}
