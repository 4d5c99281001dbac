package controllers

import (
	"errors"
	"net/http"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUserInput defines the expected JSON structure for creating a user
type CreateUserInput struct {
	Username  string `json:"username" binding:"required,min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required,oneof=admin accountant staff"`
}

// UpdateUserInput defines the expected JSON structure for updating a user
type UpdateUserInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin accountant staff"`
	IsActive  *bool   `json:"isActive"`
}

// GetUsers retrieves users with search, role filter and pagination
func GetUsers(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern)
	}
	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid role filter")
			return
		}
		query = query.Where("role = ?", role)
	}
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count users")
		return
	}

	var users []models.User
	if err := query.Scopes(utils.Paginate(p)).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": p.Meta(total),
	})
}

// GetUser retrieves a specific user by ID
func GetUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser creates a new user account (admin only)
func CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	if err := config.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Username already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password, // hashed in BeforeCreate hook
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      input.Role,
		IsActive:  true,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser updates an existing user (admin only)
func UpdateUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Username != nil && *input.Username != user.Username {
		var existing models.User
		if err := config.DB.Where("username = ?", *input.Username).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Username already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		var existing models.User
		if err := config.DB.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Email already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = hashed
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		// Demoting the last active admin would lock everyone out
		if user.Role == models.RoleAdmin && *input.Role != models.RoleAdmin {
			count, err := activeAdminCount()
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			if count <= 1 {
				utils.RespondWithError(c, http.StatusBadRequest, "Cannot change role of the last admin")
				return
			}
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser soft deletes a user (admin only)
func DeleteUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if currentID, exists := c.Get("userId"); exists && currentID == userUUID.String() {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if user.Role == models.RoleAdmin {
		count, err := activeAdminCount()
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if count <= 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete the last admin user")
			return
		}
	}

	if err := config.DB.Model(&user).Update("is_active", false).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func activeAdminCount() (int64, error) {
	var count int64
	err := config.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Count(&count).Error
	return count, err
}
