package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes a JSON error body with the given status
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
