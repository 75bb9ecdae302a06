package controllers

import (
	"net/http"

	"freshkeep/config"
	"freshkeep/services"

	"github.com/gin-gonic/gin"
)

func GetSettings(c *gin.Context) {
	settings, err := services.NewSettingsService(config.DB).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateSettings(c *gin.Context) {
	var u services.SettingsUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := services.NewSettingsService(config.DB).Update(u)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
