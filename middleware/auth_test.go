package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gorm.DB, models.User, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Car{},
		&models.Job{},
	))
	config.SetDB(db)

	user := models.User{
		Username: "staffer",
		Email:    "staffer@example.com",
		Password: "password123",
		Role:     models.RoleStaff,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID.String(), user.Role)
	require.NoError(t, err)

	return db, user, token
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	db, user, token := setupAuthTest(t)
	r := protectedRouter()

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := doGet(r, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disabled user rejected", func(t *testing.T) {
		require.NoError(t, db.Model(&user).Update("is_active", false).Error)
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	_, _, token := setupAuthTest(t)

	t.Run("staff blocked from admin route", func(t *testing.T) {
		r := protectedRouter(RequireRole(models.RoleAdmin, models.RoleAccountant))
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff allowed on staff route", func(t *testing.T) {
		r := protectedRouter(RequireRole(models.RoleStaff))
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
