package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farmate/farmate-backend/internal/database"
	"github.com/farmate/farmate-backend/internal/models"
	"github.com/farmate/farmate-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(db), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"userId":   c.GetUint("userId"),
			"userType": c.GetString("userType"),
		})
	})
	return db, r
}

func get(r http.Handler, path string, header func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if header != nil {
		header(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	db, router := setupAuthTest(t)

	farmer := models.Farmer{Name: "Ravi", Phone: "9876500001"}
	require.NoError(t, db.Create(&farmer).Error)
	driver := models.Driver{Name: "Suresh", Phone: "9876500002"}
	require.NoError(t, db.Create(&driver).Error)

	farmerTok, err := utils.GenerateToken(farmer.ID, models.UserTypeFarmer)
	require.NoError(t, err)
	driverTok, err := utils.GenerateToken(driver.ID, models.UserTypeDriver)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := get(router, "/whoami", nil)
		assert.Equal(t, 401, w.Code)
		assert.Contains(t, w.Body.String(), "No token, authorization denied")
	})

	t.Run("malformed token", func(t *testing.T) {
		w := get(router, "/whoami", func(req *http.Request) {
			req.Header.Set("x-auth-token", "not-a-token")
		})
		assert.Equal(t, 401, w.Code)
		assert.Contains(t, w.Body.String(), "Token is not valid")
	})

	t.Run("x-auth-token header", func(t *testing.T) {
		w := get(router, "/whoami", func(req *http.Request) {
			req.Header.Set("x-auth-token", farmerTok)
		})
		assert.Equal(t, 200, w.Code)
		assert.Contains(t, w.Body.String(), `"userType":"farmer"`)
	})

	t.Run("bearer header", func(t *testing.T) {
		w := get(router, "/whoami", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+driverTok)
		})
		assert.Equal(t, 200, w.Code)
		assert.Contains(t, w.Body.String(), `"userType":"driver"`)
	})

	t.Run("query parameter", func(t *testing.T) {
		w := get(router, "/whoami?token="+farmerTok, nil)
		assert.Equal(t, 200, w.Code)
	})

	t.Run("authorization header without bearer scheme", func(t *testing.T) {
		w := get(router, "/whoami", func(req *http.Request) {
			req.Header.Set("Authorization", farmerTok)
		})
		assert.Equal(t, 401, w.Code)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		ghost := models.Farmer{Phone: "9876500003"}
		require.NoError(t, db.Create(&ghost).Error)
		tok, err := utils.GenerateToken(ghost.ID, models.UserTypeFarmer)
		require.NoError(t, err)
		require.NoError(t, db.Unscoped().Delete(&ghost).Error)

		w := get(router, "/whoami", func(req *http.Request) {
			req.Header.Set("x-auth-token", tok)
		})
		assert.Equal(t, 401, w.Code)
		assert.Contains(t, w.Body.String(), "Token is not valid")
	})

	t.Run("token with an unknown user type", func(t *testing.T) {
		tok, err := utils.GenerateToken(farmer.ID, "admin")
		require.NoError(t, err)

		w := get(router, "/whoami", func(req *http.Request) {
			req.Header.Set("x-auth-token", tok)
		})
		assert.Equal(t, 401, w.Code)
	})
}
