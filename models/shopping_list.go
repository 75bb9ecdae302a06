package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingListItem is a plain checklist entry. SourceItemID is a weak
// reference to the food item it restocks, if any.
type ShoppingListItem struct {
	ID           string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Category     FoodCategory `gorm:"type:varchar(20);default:'other'" json:"category"`
	Quantity     float64      `gorm:"default:1" json:"quantity"`
	Unit         string       `gorm:"type:varchar(20);default:'pcs'" json:"unit"`
	Checked      bool         `gorm:"default:false" json:"checked"`
	SourceItemID *string      `gorm:"type:varchar(36)" json:"source_item_id"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (ShoppingListItem) TableName() string { return "shopping_list" }

func (s *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
