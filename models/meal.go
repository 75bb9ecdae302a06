package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (t MealType) Valid() bool {
	return t == MealBreakfast || t == MealLunch || t == MealDinner || t == MealSnack
}

// Meal carries its own declared macro totals. Items are supplementary
// detail and are not required to sum to the meal's totals.
type Meal struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	MealType    MealType   `gorm:"type:varchar(20);index" json:"meal_type"`
	Date        time.Time  `gorm:"index" json:"date"`
	Calories    float64    `json:"calories"`
	Protein     float64    `json:"protein"`
	Fats        float64    `json:"fats"`
	Carbs       float64    `json:"carbs"`
	ServingSize string     `gorm:"type:varchar(50)" json:"serving_size"`
	Emoji       string     `gorm:"type:varchar(10)" json:"emoji"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Source      string     `gorm:"type:varchar(20);default:'manual'" json:"source"` // "manual" | "suggestion"
	Items       []MealItem `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MealItem optionally points at an inventory item. The reference is weak:
// deleting the food item nulls FoodItemID and never touches the meal item.
type MealItem struct {
	ID         string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	MealID     string  `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	FoodItemID *string `gorm:"type:varchar(36)" json:"food_item_id"`
	Name       string  `gorm:"not null" json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `gorm:"type:varchar(20)" json:"unit"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Fats       float64 `json:"fats"`
	Carbs      float64 `json:"carbs"`
}

func (mi *MealItem) BeforeCreate(tx *gorm.DB) error {
	if mi.ID == "" {
		mi.ID = uuid.NewString()
	}
	return nil
}
