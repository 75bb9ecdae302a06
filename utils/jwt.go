package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT issues the bearer token handed out after pairing. The device
// name only serves to identify the client in logs and alerts.
func GenerateJWT(device string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"device": device,
		"exp":    time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
