package controllers

import (
	"net/http"
	"testing"

	"detailpro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteLastAdminRejected(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "onlyadmin", models.RoleAdmin)

	r := newTestRouter()
	r.DELETE("/api/auth/users/:id", DeleteUser)

	w := performRequest(r, "DELETE", "/api/auth/users/"+admin.ID.String(), nil)
	assertStatus(t, w, http.StatusBadRequest)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", admin.ID).Error)
	assert.True(t, reloaded.IsActive, "last admin must remain active")
}

func TestDeleteAdminAllowedWithTwoAdmins(t *testing.T) {
	db := setupTestDB(t)
	first := createTestUser(t, db, "admin1", models.RoleAdmin)
	createTestUser(t, db, "admin2", models.RoleAdmin)

	r := newTestRouter()
	r.DELETE("/api/auth/users/:id", DeleteUser)

	w := performRequest(r, "DELETE", "/api/auth/users/"+first.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", first.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestCreateUserDuplicateChecks(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "existing", models.RoleStaff)

	r := newTestRouter()
	r.POST("/api/auth/users", CreateUser)

	tests := []struct {
		name          string
		body          map[string]interface{}
		expectedCode  int
		expectedError string
	}{
		{
			name: "Duplicate username",
			body: map[string]interface{}{
				"username": "existing",
				"email":    "new@example.com",
				"password": "password123",
				"role":     "staff",
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Username already exists",
		},
		{
			name: "Duplicate email",
			body: map[string]interface{}{
				"username": "newuser",
				"email":    "existing@example.com",
				"password": "password123",
				"role":     "staff",
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Email already exists",
		},
		{
			name: "Invalid role",
			body: map[string]interface{}{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "password123",
				"role":     "superuser",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Valid accountant",
			body: map[string]interface{}{
				"username": "books",
				"email":    "books@example.com",
				"password": "password123",
				"role":     "accountant",
			},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, "POST", "/api/auth/users", tt.body)
			assert.Equal(t, tt.expectedCode, w.Code, w.Body.String())

			if tt.expectedError != "" {
				body := decodeBody(t, w)
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

func TestGetUsersRoleFilter(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "boss", models.RoleAdmin)
	createTestUser(t, db, "books", models.RoleAccountant)
	createTestUser(t, db, "washer", models.RoleStaff)

	r := newTestRouter()
	r.GET("/api/auth/users", GetUsers)

	w := performRequest(r, "GET", "/api/auth/users?role=accountant", nil)
	assertStatus(t, w, http.StatusOK)
	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "books", users[0].(map[string]interface{})["username"])

	w = performRequest(r, "GET", "/api/auth/users?role=manager", nil)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateUserLastAdminRoleChangeRejected(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "soloadmin", models.RoleAdmin)

	r := newTestRouter()
	r.PUT("/api/auth/users/:id", UpdateUser)

	w := performRequest(r, "PUT", "/api/auth/users/"+admin.ID.String(), map[string]interface{}{
		"role": "staff",
	})
	assertStatus(t, w, http.StatusBadRequest)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", admin.ID).Error)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)
}
