package controllers

import (
	"crypto/subtle"
	"net/http"
	"os"

	"freshkeep/utils"

	"github.com/gin-gonic/gin"
)

// POST /auth/pair  { "pass_phrase": "...", "device_name": "kitchen tablet" }
func Pair(c *gin.Context) {
	var body struct {
		PassPhrase string `json:"pass_phrase" binding:"required"`
		DeviceName string `json:"device_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pass_phrase is required"})
		return
	}

	expected := os.Getenv("HOUSEHOLD_PASSPHRASE")
	if expected == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: HOUSEHOLD_PASSPHRASE not set"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(body.PassPhrase), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong pass phrase"})
		return
	}

	if body.DeviceName == "" {
		body.DeviceName = "device"
	}
	token, err := utils.GenerateJWT(body.DeviceName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
