package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"detailpro-backend/config"
	"detailpro-backend/middleware"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Identifier string `json:"identifier"` // accepts either field in one key
	Password   string `json:"password" binding:"required"`
}

// loginIdentifier returns the first non-empty login key from the request body
func (in LoginInput) loginIdentifier() string {
	for _, v := range []string{in.Username, in.Email, in.Identifier} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	identifier := input.loginIdentifier()
	if identifier == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Username or email is required")
		return
	}

	var user models.User
	result := config.DB.Where("username = ? OR email = ?", identifier, identifier).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !user.IsActive {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account is disabled")
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("password", hashed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
