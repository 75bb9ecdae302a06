package services

import (
	"fmt"

	"freshkeep/models"

	"gorm.io/gorm"
)

type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

type ShoppingItemInput struct {
	Name         string              `json:"name"`
	Category     models.FoodCategory `json:"category"`
	Quantity     float64             `json:"quantity"`
	Unit         string              `json:"unit"`
	SourceItemID *string             `json:"source_item_id"`
}

func (s *ShoppingService) Add(in ShoppingItemInput) (*models.ShoppingListItem, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Category != "" && !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}

	item := models.ShoppingListItem{
		Name:         in.Name,
		Category:     in.Category,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		SourceItemID: in.SourceItemID,
	}
	if item.Category == "" {
		item.Category = models.CategoryOther
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Unit == "" {
		item.Unit = "pcs"
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// AddFromFoodItem creates a restock entry linked to an inventory item,
// typically one that expired or ran out.
func (s *ShoppingService) AddFromFoodItem(foodItemID string) (*models.ShoppingListItem, error) {
	var food models.FoodItem
	if err := s.db.First(&food, "id = ?", foodItemID).Error; err != nil {
		return nil, err
	}
	return s.Add(ShoppingItemInput{
		Name:         food.Name,
		Category:     food.Category,
		Quantity:     food.Quantity,
		Unit:         food.Unit,
		SourceItemID: &food.ID,
	})
}

// List returns unchecked entries first, newest first within each group.
func (s *ShoppingService) List() ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := s.db.
		Order("checked ASC").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *ShoppingService) Toggle(id string, checked bool) error {
	res := s.db.Model(&models.ShoppingListItem{}).
		Where("id = ?", id).
		Update("checked", checked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ShoppingService) Delete(id string) error {
	res := s.db.Delete(&models.ShoppingListItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ShoppingService) ClearChecked() error {
	return s.db.Where("checked = ?", true).Delete(&models.ShoppingListItem{}).Error
}

// PendingCount is the badge shown on the shopping tab.
func (s *ShoppingService) PendingCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.ShoppingListItem{}).
		Where("checked = ?", false).
		Count(&count).Error
	return count, err
}
