package handlers

import (
	"errors"
	"log"

	"github.com/farmate/farmate-backend/internal/models"
	"github.com/farmate/farmate-backend/internal/services"
	"github.com/farmate/farmate-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SendOTPInput struct {
	Phone    string `json:"phone" binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=farmer driver"`
}

// SendOTP issues a 6-digit code for the phone number, overwriting any prior
// pending code. The response is successful regardless of SMS delivery.
func SendOTP(store services.OTPStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Phone number and user type are required"})
			return
		}

		code, err := utils.GenerateOTP()
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		codeHash, err := utils.HashOTP(code)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		if err := store.Save(c.Request.Context(), input.Phone, codeHash); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		if err := utils.SendOTPSMS(input.Phone, code); err != nil {
			log.Printf("OTP SMS to %s failed: %v", input.Phone, err)
		}
		log.Printf("OTP for %s: %s", input.Phone, code)

		c.JSON(200, gin.H{"success": true, "message": "OTP sent successfully"})
	}
}

type VerifyOTPInput struct {
	Phone    string `json:"phone" binding:"required"`
	OTP      string `json:"otp" binding:"required"`
	UserType string `json:"userType" binding:"required"`
}

// VerifyOTP checks the pending code for the phone, creates the farmer or
// driver record on first login, and returns a session token. The code is
// consumed only on success; a failed attempt leaves it in place.
func VerifyOTP(db *gorm.DB, store services.OTPStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Phone, OTP, and user type are required"})
			return
		}

		codeHash, err := store.Get(c.Request.Context(), input.Phone)
		if err != nil || !utils.CheckOTP(input.OTP, codeHash) {
			c.JSON(400, gin.H{"success": false, "message": "Invalid OTP"})
			return
		}

		var userID uint
		var name string

		switch input.UserType {
		case models.UserTypeFarmer:
			var farmer models.Farmer
			err := db.Where("phone = ?", input.Phone).First(&farmer).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				farmer = models.Farmer{Phone: input.Phone}
				if err := db.Create(&farmer).Error; err != nil {
					c.JSON(500, gin.H{"success": false, "message": "Server error"})
					return
				}
			} else if err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Server error"})
				return
			}
			userID, name = farmer.ID, farmer.Name

		case models.UserTypeDriver:
			var driver models.Driver
			err := db.Where("phone = ?", input.Phone).First(&driver).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				driver = models.Driver{Phone: input.Phone}
				if err := db.Create(&driver).Error; err != nil {
					c.JSON(500, gin.H{"success": false, "message": "Server error"})
					return
				}
			} else if err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Server error"})
				return
			}
			userID, name = driver.ID, driver.Name

		default:
			c.JSON(400, gin.H{"success": false, "message": "Invalid user type"})
			return
		}

		token, err := utils.GenerateToken(userID, input.UserType)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		// Single use: the code is gone once a login succeeds.
		if err := store.Delete(c.Request.Context(), input.Phone); err != nil {
			log.Printf("Failed to delete OTP for %s: %v", input.Phone, err)
		}

		c.JSON(200, gin.H{
			"success": true,
			"token":   token,
			"user": gin.H{
				"id":    userID,
				"name":  name,
				"phone": input.Phone,
				"type":  input.UserType,
			},
		})
	}
}
