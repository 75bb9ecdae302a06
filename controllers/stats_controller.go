package controllers

import (
	"net/http"

	"freshkeep/config"
	"freshkeep/services"

	"github.com/gin-gonic/gin"
)

func statsService() *services.StatsService {
	return services.NewStatsService(config.DB, services.NewStatusService(config.DB))
}

func GetInventoryStats(c *gin.Context) {
	stats, err := statsService().Inventory()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func GetWasteStats(c *gin.Context) {
	stats, err := statsService().Waste()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
