package routes

import (
	"freshkeep/controllers"
	"freshkeep/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public pairing route
	auth := r.Group("/auth")
	{
		auth.POST("/pair", controllers.Pair)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		items := api.Group("/items")
		{
			items.GET("", controllers.ListFoodItems)
			items.POST("", controllers.CreateFoodItem)
			items.GET("/expiring", controllers.ListExpiringItems)
			items.GET("/expired", controllers.ListExpiredItems)
			items.GET("/:id", controllers.GetFoodItem)
			items.PATCH("/:id", controllers.UpdateFoodItem)
			items.POST("/:id/disposition", controllers.SetFoodItemDisposition)
			items.DELETE("/:id", controllers.DeleteFoodItem)
		}

		meals := api.Group("/meals")
		{
			meals.GET("", controllers.ListMeals)
			meals.POST("", controllers.CreateMeal)
			meals.GET("/:id", controllers.GetMeal)
			meals.PATCH("/:id", controllers.UpdateMeal)
			meals.DELETE("/:id", controllers.DeleteMeal)
		}
		api.GET("/nutrition/daily", controllers.GetDailyNutrition)

		shopping := api.Group("/shopping")
		{
			shopping.GET("", controllers.ListShoppingItems)
			shopping.POST("", controllers.AddShoppingItem)
			shopping.DELETE("/checked", controllers.ClearCheckedShoppingItems)
			shopping.POST("/:id/toggle", controllers.ToggleShoppingItem)
			shopping.DELETE("/:id", controllers.DeleteShoppingItem)
		}

		api.GET("/settings", controllers.GetSettings)
		api.PATCH("/settings", controllers.UpdateSettings)

		api.GET("/stats/inventory", controllers.GetInventoryStats)
		api.GET("/stats/waste", controllers.GetWasteStats)

		api.POST("/assistant/scan-label", controllers.ScanLabel)
		api.POST("/assistant/recipes", controllers.SuggestRecipes)

		api.GET("/alerts", controllers.ListAlerts)
		api.POST("/alerts/check", controllers.CheckAlerts)
		api.GET("/ws", controllers.AlertStream)
	}

	return r
}
