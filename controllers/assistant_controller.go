package controllers

import (
	"net/http"

	"freshkeep/config"
	"freshkeep/services"

	"github.com/gin-gonic/gin"
)

func assistantService() *services.AssistantService {
	return services.NewAssistantService(
		services.NewOpenAIService(),
		services.NewFoodService(config.DB),
	)
}

// POST /assistant/scan-label  { "image_base64": "..." }
func ScanLabel(c *gin.Context) {
	var body struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is required"})
		return
	}
	scanned, err := assistantService().ScanLabel(body.ImageBase64)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scanned)
}

// POST /assistant/recipes  { "count": 3 }
func SuggestRecipes(c *gin.Context) {
	var body struct {
		Count int `json:"count"`
	}
	// empty body means the default count
	_ = c.ShouldBindJSON(&body)

	recipes, err := assistantService().SuggestRecipes(body.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
