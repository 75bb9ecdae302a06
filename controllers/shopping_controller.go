package controllers

import (
	"net/http"

	"freshkeep/config"
	"freshkeep/services"

	"github.com/gin-gonic/gin"
)

func AddShoppingItem(c *gin.Context) {
	var in services.ShoppingItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewShoppingService(config.DB)
	if in.SourceItemID != nil && in.Name == "" {
		// restock flow: copy name/category/quantity from the source item
		item, err := svc.AddFromFoodItem(*in.SourceItemID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
		return
	}

	item, err := svc.Add(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func ListShoppingItems(c *gin.Context) {
	svc := services.NewShoppingService(config.DB)
	items, err := svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	pending, err := svc.PendingCount()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "pending": pending})
}

// POST /shopping/:id/toggle  { "checked": true }
func ToggleShoppingItem(c *gin.Context) {
	var body struct {
		Checked bool `json:"checked"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.NewShoppingService(config.DB).Toggle(c.Param("id"), body.Checked); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteShoppingItem(c *gin.Context) {
	if err := services.NewShoppingService(config.DB).Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ClearCheckedShoppingItems(c *gin.Context) {
	if err := services.NewShoppingService(config.DB).ClearChecked(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
