package handlers

import (
	"math"
	"sort"
	"strconv"

	"github.com/farmate/farmate-backend/internal/models"
	"github.com/farmate/farmate-backend/internal/services"
	"github.com/farmate/farmate-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListVehicles is the catalog query: filter by type, hourly-rate range and a
// geo radius (km), always restricted to available listings, paginated.
func ListVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			c.JSON(400, gin.H{"success": false, "message": "Invalid page"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			c.JSON(400, gin.H{"success": false, "message": "Invalid limit"})
			return
		}

		var minPrice, maxPrice float64
		if v := c.Query("minPrice"); v != "" {
			if minPrice, err = strconv.ParseFloat(v, 64); err != nil {
				c.JSON(400, gin.H{"success": false, "message": "Invalid minPrice"})
				return
			}
		}
		if v := c.Query("maxPrice"); v != "" {
			if maxPrice, err = strconv.ParseFloat(v, 64); err != nil {
				c.JSON(400, gin.H{"success": false, "message": "Invalid maxPrice"})
				return
			}
		}

		latStr, lngStr, radiusStr := c.Query("lat"), c.Query("lng"), c.Query("radius")
		geoQuery := latStr != "" && lngStr != "" && radiusStr != ""

		// Filters are rebuilt for the count and the page query.
		applyFilters := func() *gorm.DB {
			q := db.Model(&models.Vehicle{}).Where("availability = ?", true)
			if t := c.Query("type"); t != "" {
				q = q.Where("type = ?", t)
			}
			if c.Query("minPrice") != "" {
				q = q.Where("hourly_rate >= ?", minPrice)
			}
			if c.Query("maxPrice") != "" {
				q = q.Where("hourly_rate <= ?", maxPrice)
			}
			return q
		}

		if geoQuery {
			lat, err := strconv.ParseFloat(latStr, 64)
			if err != nil || lat < -90 || lat > 90 {
				c.JSON(400, gin.H{"success": false, "message": "Invalid latitude"})
				return
			}
			lng, err := strconv.ParseFloat(lngStr, 64)
			if err != nil || lng < -180 || lng > 180 {
				c.JSON(400, gin.H{"success": false, "message": "Invalid longitude"})
				return
			}
			radius, err := strconv.ParseFloat(radiusStr, 64)
			if err != nil || radius <= 0 {
				c.JSON(400, gin.H{"success": false, "message": "Invalid radius"})
				return
			}

			// Bounding box narrows the scan; the exact radius check and
			// nearest-first ordering happen on the haversine distance.
			bbox := utils.GetBoundingBox(lat, lng, radius)
			var candidates []models.Vehicle
			if err := applyFilters().
				Where("latitude BETWEEN ? AND ?", bbox.SouthWest.Lat, bbox.NorthEast.Lat).
				Where("longitude BETWEEN ? AND ?", bbox.SouthWest.Lng, bbox.NorthEast.Lng).
				Preload("Driver").Preload("Images").
				Find(&candidates).Error; err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Server error"})
				return
			}

			type scored struct {
				vehicle  models.Vehicle
				distance float64
			}
			var matches []scored
			for _, v := range candidates {
				d := utils.HaversineDistance(lat, lng, v.Latitude, v.Longitude)
				if d <= radius {
					matches = append(matches, scored{vehicle: v, distance: d})
				}
			}
			sort.Slice(matches, func(i, j int) bool {
				return matches[i].distance < matches[j].distance
			})

			total := len(matches)
			start := (page - 1) * limit
			if start > total {
				start = total
			}
			end := start + limit
			if end > total {
				end = total
			}

			vehicles := make([]models.Vehicle, 0, end-start)
			for _, m := range matches[start:end] {
				vehicles = append(vehicles, m.vehicle)
			}

			c.JSON(200, gin.H{
				"success":     true,
				"vehicles":    vehicles,
				"total":       total,
				"totalPages":  int(math.Ceil(float64(total) / float64(limit))),
				"currentPage": page,
			})
			return
		}

		var total int64
		if err := applyFilters().Count(&total).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		var vehicles []models.Vehicle
		if err := applyFilters().
			Preload("Driver").Preload("Images").
			Limit(limit).Offset((page - 1) * limit).
			Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(200, gin.H{
			"success":     true,
			"vehicles":    vehicles,
			"total":       total,
			"totalPages":  int(math.Ceil(float64(total) / float64(limit))),
			"currentPage": page,
		})
	}
}

// GetVehicle returns a single listing with its owning driver.
func GetVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.Preload("Driver").Preload("Images").
			First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "vehicle": vehicle})
	}
}

// GetVehicleTypes returns the closed set of listable equipment kinds.
func GetVehicleTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "types": models.VehicleTypes()})
	}
}

// UploadVehicleImage attaches a photo or document to a listing. Only the
// owning driver may upload.
func UploadVehicleImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}

		if userType != models.UserTypeDriver || vehicle.DriverID != userId {
			c.JSON(401, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Image file is required"})
			return
		}

		path, err := services.UploadImage(file, "vehicles")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		image := models.VehicleImage{
			VehicleID: vehicle.ID,
			URL:       services.GetImageURL(path),
		}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(201, gin.H{"success": true, "image": image})
	}
}
