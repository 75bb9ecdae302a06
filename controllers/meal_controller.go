package controllers

import (
	"net/http"

	"freshkeep/config"
	"freshkeep/models"
	"freshkeep/services"
	"freshkeep/utils"

	"github.com/gin-gonic/gin"
)

func CreateMeal(c *gin.Context) {
	var in services.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := services.NewMealService(config.DB).AddMeal(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GET /meals?date=YYYY-MM-DD&type=breakfast
func ListMeals(c *gin.Context) {
	rawDate := c.Query("date")
	if rawDate == "" {
		rawDate = utils.FormatDate(utils.Today())
	}
	date, err := utils.ParseDate(rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	svc := services.NewMealService(config.DB)
	var meals []models.Meal
	if rawType := c.Query("type"); rawType != "" {
		mealType := models.MealType(rawType)
		if !mealType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal type"})
			return
		}
		meals, err = svc.ListByDateAndType(date, mealType)
	} else {
		meals, err = svc.ListByDate(date)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func GetMeal(c *gin.Context) {
	meal, err := services.NewMealService(config.DB).GetMeal(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func UpdateMeal(c *gin.Context) {
	var u services.MealUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := services.NewMealService(config.DB).UpdateMeal(c.Param("id"), u)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func DeleteMeal(c *gin.Context) {
	if err := services.NewMealService(config.DB).DeleteMeal(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /nutrition/daily?date=YYYY-MM-DD
func GetDailyNutrition(c *gin.Context) {
	rawDate := c.Query("date")
	if rawDate == "" {
		rawDate = utils.FormatDate(utils.Today())
	}
	date, err := utils.ParseDate(rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	rollup, err := services.NewMealService(config.DB).DailyNutrition(date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rollup)
}
