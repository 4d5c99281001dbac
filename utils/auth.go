// utils/auth.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecret = []byte("fallback_secret")
	jwtExpiry = 24 * time.Hour
)

// ConfigureJWT applies the signing secret and token lifetime, called once at
// startup with the loaded configuration.
func ConfigureJWT(secret string, expiresInHours int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if expiresInHours > 0 {
		jwtExpiry = time.Duration(expiresInHours) * time.Hour
	}
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken mints an HS256 JWT carrying the user id and role
func GenerateToken(userID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(jwtExpiry).Unix(),
		"iat":  time.Now().Unix(),
	})

	return token.SignedString(jwtSecret)
}

// ParseToken validates a bearer token and returns its claims
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
