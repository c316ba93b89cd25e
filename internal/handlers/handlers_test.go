package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/farmate/farmate-backend/internal/database"
	"github.com/farmate/farmate-backend/internal/middleware"
	"github.com/farmate/farmate-backend/internal/models"
	"github.com/farmate/farmate-backend/internal/services"
	"github.com/farmate/farmate-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var phoneSeq uint64

// nextPhone returns a phone number unique within the test binary.
func nextPhone() string {
	return fmt.Sprintf("98765%05d", atomic.AddUint64(&phoneSeq, 1))
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func newTestRouter(db *gorm.DB, store services.OTPStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	hub := services.NewHub()
	go hub.Run()

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/send-otp", SendOTP(store))
	api.POST("/auth/verify-otp", VerifyOTP(db, store))
	api.GET("/vehicles", ListVehicles(db))
	api.GET("/vehicles/types", GetVehicleTypes())
	api.GET("/vehicles/:id", GetVehicle(db))

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.POST("/vehicles/:id/images", UploadVehicleImage(db))
		protected.POST("/bookings", CreateBooking(db, hub))
		protected.GET("/bookings/farmer", GetFarmerBookings(db))
		protected.GET("/bookings/driver", GetDriverBookings(db))
		protected.GET("/bookings/estimate", EstimateBookingPrice(db))
		protected.GET("/bookings/:id", GetBooking(db))
		protected.PUT("/bookings/:id/status", UpdateBookingStatus(db, hub))
		protected.GET("/farmers/:id", GetFarmer(db))
		protected.PUT("/farmers/:id", UpdateFarmer(db))
		protected.GET("/drivers/:id", GetDriver(db))
		protected.PUT("/drivers/:id", UpdateDriver(db))
		protected.POST("/drivers/:id/vehicles", AddVehicle(db))
	}

	return r
}

func performRequest(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedFarmer(t *testing.T, db *gorm.DB) models.Farmer {
	t.Helper()
	farmer := models.Farmer{Name: "Ravi", Phone: nextPhone()}
	require.NoError(t, db.Create(&farmer).Error)
	return farmer
}

func seedDriver(t *testing.T, db *gorm.DB) models.Driver {
	t.Helper()
	driver := models.Driver{Name: "Suresh", Phone: nextPhone()}
	require.NoError(t, db.Create(&driver).Error)
	return driver
}

func seedVehicle(t *testing.T, db *gorm.DB, driverID uint, hourlyRate float64, available bool) models.Vehicle {
	t.Helper()
	vehicle := models.Vehicle{
		DriverID:           driverID,
		Type:               models.VehicleTypeTractor,
		Brand:              "Mahindra",
		ModelName:          "575 DI",
		Year:               2021,
		RegistrationNumber: fmt.Sprintf("KA01%05d", atomic.AddUint64(&phoneSeq, 1)),
		HourlyRate:         hourlyRate,
		DailyRate:          hourlyRate * 8,
		Availability:       true,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	// The column has a database default, so a false value is written with an
	// explicit update rather than on create.
	if !available {
		require.NoError(t, db.Model(&vehicle).Update("availability", false).Error)
		vehicle.Availability = false
	}
	return vehicle
}

func farmerToken(t *testing.T, farmerID uint) string {
	t.Helper()
	token, err := utils.GenerateToken(farmerID, models.UserTypeFarmer)
	require.NoError(t, err)
	return token
}

func driverToken(t *testing.T, driverID uint) string {
	t.Helper()
	token, err := utils.GenerateToken(driverID, models.UserTypeDriver)
	require.NoError(t, err)
	return token
}
