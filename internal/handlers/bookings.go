package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/farmate/farmate-backend/internal/models"
	"github.com/farmate/farmate-backend/internal/services"
	"github.com/farmate/farmate-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LocationInput struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type CreateBookingInput struct {
	FarmerID        uint           `json:"farmerId" binding:"required"`
	DriverID        uint           `json:"driverId" binding:"required"`
	VehicleID       uint           `json:"vehicleId" binding:"required"`
	BookingType     string         `json:"bookingType" binding:"required,oneof=instant scheduled"`
	StartDate       time.Time      `json:"startDate" binding:"required"`
	EndDate         time.Time      `json:"endDate" binding:"required"`
	DurationType    string         `json:"durationType" binding:"required,oneof=hourly daily acre"`
	Quantity        float64        `json:"quantity" binding:"required"`
	TotalPrice      float64        `json:"totalPrice" binding:"required"`
	PaymentMethod   string         `json:"paymentMethod" binding:"required,oneof=upi cod wallet"`
	PickupLocation  *LocationInput `json:"pickupLocation"`
	DropoffLocation *LocationInput `json:"dropoffLocation"`
	Notes           string         `json:"notes"`
}

// CreateBooking reserves a vehicle for a farmer. The booking insert, the
// availability flip and the farmer counter are three separate writes with no
// transaction around them; a failure partway through is reported as a server
// error and leaves the earlier writes in place.
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Missing required fields"})
			return
		}

		// The availability check is the only guard; nothing prevents a
		// concurrent create from passing it before this one writes.
		var vehicle models.Vehicle
		if err := db.First(&vehicle, input.VehicleID).Error; err != nil || !vehicle.Availability {
			c.JSON(400, gin.H{"success": false, "message": "Vehicle is not available"})
			return
		}

		booking := models.Booking{
			FarmerID:      input.FarmerID,
			DriverID:      input.DriverID,
			VehicleID:     input.VehicleID,
			BookingType:   input.BookingType,
			StartDate:     input.StartDate,
			EndDate:       input.EndDate,
			DurationType:  input.DurationType,
			Quantity:      input.Quantity,
			TotalPrice:    input.TotalPrice,
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: input.PaymentMethod,
			Notes:         input.Notes,
		}
		if input.PickupLocation != nil {
			booking.PickupAddress = input.PickupLocation.Address
			booking.PickupLat = input.PickupLocation.Lat
			booking.PickupLng = input.PickupLocation.Lng
		}
		if input.DropoffLocation != nil {
			booking.DropoffAddress = input.DropoffLocation.Address
			booking.DropoffLat = input.DropoffLocation.Lat
			booking.DropoffLng = input.DropoffLocation.Lng
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		vehicle.Availability = false
		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		if err := db.Model(&models.Farmer{}).Where("id = ?", input.FarmerID).
			UpdateColumn("total_bookings", gorm.Expr("total_bookings + ?", 1)).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		hub.SendBookingEvent(booking.FarmerID, booking.DriverID, services.BookingEvent{
			Type:       "booking_created",
			BookingID:  booking.ID,
			VehicleID:  booking.VehicleID,
			Status:     string(booking.Status),
			TotalPrice: booking.TotalPrice,
		})

		go notifyDriverOfBooking(db, booking)

		c.JSON(201, gin.H{"success": true, "booking": booking})
	}
}

func notifyDriverOfBooking(db *gorm.DB, booking models.Booking) {
	var driver models.Driver
	if err := db.First(&driver, booking.DriverID).Error; err != nil {
		return
	}
	var vehicle models.Vehicle
	if err := db.First(&vehicle, booking.VehicleID).Error; err != nil {
		return
	}
	var farmer models.Farmer
	if err := db.First(&farmer, booking.FarmerID).Error; err != nil {
		return
	}
	if err := utils.SendBookingNotificationSMS(driver.Phone, string(vehicle.Type), farmer.Name); err != nil {
		log.Printf("Booking SMS to driver %d failed: %v", driver.ID, err)
	}
}

// GetBooking returns a booking with its farmer, driver and vehicle.
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking models.Booking
		if err := db.Preload("Farmer").Preload("Driver").Preload("Vehicle").
			First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Booking not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "booking": booking})
	}
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingStatus moves a booking to any of the five states. Side
// effects key on the target value alone, not the current state, so they fire
// even on repeated or out-of-order calls: completed pays the driver, and
// cancelled (only cancelled) frees the vehicle.
func UpdateBookingStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil || !models.IsValidBookingStatus(input.Status) {
			c.JSON(400, gin.H{"success": false, "message": "Invalid status"})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Booking not found"})
			return
		}

		status := models.BookingStatus(input.Status)

		if status == models.BookingStatusCompleted {
			// A missing driver skips the payout; the status write below
			// still proceeds.
			var driver models.Driver
			if err := db.First(&driver, booking.DriverID).Error; err == nil {
				driver.TotalTrips++
				driver.TotalEarnings += booking.TotalPrice
				if err := db.Save(&driver).Error; err != nil {
					c.JSON(500, gin.H{"success": false, "message": "Server error"})
					return
				}
			}
		}

		if status == models.BookingStatusCancelled {
			var vehicle models.Vehicle
			if err := db.First(&vehicle, booking.VehicleID).Error; err == nil {
				vehicle.Availability = true
				if err := db.Save(&vehicle).Error; err != nil {
					c.JSON(500, gin.H{"success": false, "message": "Server error"})
					return
				}
			}
		}

		if err := db.Model(&booking).Update("status", status).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}
		booking.Status = status

		hub.SendBookingEvent(booking.FarmerID, booking.DriverID, services.BookingEvent{
			Type:      "booking_status",
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			Status:    string(status),
		})

		c.JSON(200, gin.H{"success": true, "booking": booking})
	}
}

// GetFarmerBookings returns the calling farmer's bookings.
func GetFarmerBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("farmer_id = ?", userId).
			Preload("Driver").Preload("Vehicle").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(200, gin.H{"success": true, "bookings": bookings})
	}
}

// GetDriverBookings returns the calling driver's bookings.
func GetDriverBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("driver_id = ?", userId).
			Preload("Farmer").Preload("Vehicle").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(200, gin.H{"success": true, "bookings": bookings})
	}
}

// EstimateBookingPrice quotes a rental price from the vehicle's rates.
func EstimateBookingPrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleID := c.Query("vehicleId")
		durationType := c.Query("durationType")
		quantity, err := strconv.ParseFloat(c.Query("quantity"), 64)
		if vehicleID == "" || durationType == "" || err != nil {
			c.JSON(400, gin.H{"success": false, "message": "vehicleId, durationType and quantity are required"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		price, err := utils.CalculateBookingPrice(&vehicle, durationType, quantity)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"success":      true,
			"vehicleId":    vehicle.ID,
			"durationType": durationType,
			"quantity":     quantity,
			"totalPrice":   price,
		})
	}
}
