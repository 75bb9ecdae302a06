package controllers

import (
	"net/http"
	"strconv"

	"freshkeep/config"
	"freshkeep/models"
	"freshkeep/services"
	"freshkeep/utils"

	"github.com/gin-gonic/gin"
)

// foodItemView decorates an item with its display label.
type foodItemView struct {
	models.FoodItem
	ExpirationLabel string `json:"expiration_label"`
}

func viewOf(item models.FoodItem) foodItemView {
	return foodItemView{
		FoodItem:        item,
		ExpirationLabel: services.ExpirationLabel(item.ExpirationDate, utils.Today()),
	}
}

func viewsOf(items []models.FoodItem) []foodItemView {
	out := make([]foodItemView, 0, len(items))
	for _, item := range items {
		out = append(out, viewOf(item))
	}
	return out
}

func CreateFoodItem(c *gin.Context) {
	var in services.FoodItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := services.NewFoodService(config.DB).Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(*item))
}

// GET /items?category=&location=&disposition=&status=&q=
func ListFoodItems(c *gin.Context) {
	filter := services.FoodFilter{
		Category:        models.FoodCategory(c.Query("category")),
		StorageLocation: models.StorageLocation(c.Query("location")),
		Disposition:     models.ItemDisposition(c.Query("disposition")),
		Status:          models.FoodStatus(c.Query("status")),
		Search:          c.Query("q"),
	}
	items, err := services.NewFoodService(config.DB).List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsOf(items))
}

func GetFoodItem(c *gin.Context) {
	item, err := services.NewFoodService(config.DB).GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(*item))
}

func UpdateFoodItem(c *gin.Context) {
	var u services.FoodItemUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := services.NewFoodService(config.DB).Update(c.Param("id"), u)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(*item))
}

// POST /items/:id/disposition  { "disposition": "consumed" | "thrown_away" }
func SetFoodItemDisposition(c *gin.Context) {
	var body struct {
		Disposition models.ItemDisposition `json:"disposition" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := services.NewFoodService(config.DB).SetDisposition(c.Param("id"), body.Disposition)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(*item))
}

func DeleteFoodItem(c *gin.Context) {
	if err := services.NewFoodService(config.DB).Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /items/expiring?days=N
func ListExpiringItems(c *gin.Context) {
	days := services.ExpiringSoonDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}
	items, err := services.NewFoodService(config.DB).ExpiringSoon(days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsOf(items))
}

func ListExpiredItems(c *gin.Context) {
	items, err := services.NewFoodService(config.DB).Expired()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsOf(items))
}
