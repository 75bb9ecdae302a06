package services

import (
	"errors"
	"fmt"

	"freshkeep/models"
	"freshkeep/utils"

	"gorm.io/gorm"
)

// ErrValidation marks rejected user input; nothing is persisted when it
// is returned.
var ErrValidation = errors.New("validation")

// ErrDispositionFinal is returned when a consumed or thrown-away item is
// asked to change disposition again.
var ErrDispositionFinal = errors.New("disposition is final")

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

type FoodItemInput struct {
	Name            string                 `json:"name"`
	Category        models.FoodCategory    `json:"category"`
	Quantity        float64                `json:"quantity"`
	Unit            string                 `json:"unit"`
	PurchaseDate    string                 `json:"purchase_date"`
	ExpirationDate  string                 `json:"expiration_date"`
	StorageLocation models.StorageLocation `json:"storage_location"`
	Price           *float64               `json:"price"`
	Currency        string                 `json:"currency"`
	Notes           string                 `json:"notes"`
}

func (s *FoodService) Create(in FoodItemInput) (*models.FoodItem, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.ExpirationDate == "" {
		return nil, fmt.Errorf("%w: expiration date is required", ErrValidation)
	}
	expiration, err := utils.ParseDate(in.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiration date must be YYYY-MM-DD", ErrValidation)
	}
	purchase := utils.Today()
	if in.PurchaseDate != "" {
		if purchase, err = utils.ParseDate(in.PurchaseDate); err != nil {
			return nil, fmt.Errorf("%w: purchase date must be YYYY-MM-DD", ErrValidation)
		}
	}
	if in.Category != "" && !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if in.StorageLocation != "" && !in.StorageLocation.Valid() {
		return nil, fmt.Errorf("%w: unknown storage location %q", ErrValidation, in.StorageLocation)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	item := models.FoodItem{
		Name:            in.Name,
		Category:        in.Category,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		PurchaseDate:    purchase,
		ExpirationDate:  expiration,
		StorageLocation: in.StorageLocation,
		Status:          ComputeStatus(expiration, utils.Today()),
		Disposition:     models.DispositionActive,
		Price:           in.Price,
		Currency:        in.Currency,
		Notes:           in.Notes,
	}
	if item.Category == "" {
		item.Category = models.CategoryOther
	}
	if item.StorageLocation == "" {
		item.StorageLocation = models.LocationFridge
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	if item.Currency == "" {
		item.Currency = "MXN"
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FoodItemUpdate holds a partial update; only non-nil fields are written.
type FoodItemUpdate struct {
	Name            *string                 `json:"name"`
	Category        *models.FoodCategory    `json:"category"`
	Quantity        *float64                `json:"quantity"`
	Unit            *string                 `json:"unit"`
	PurchaseDate    *string                 `json:"purchase_date"`
	ExpirationDate  *string                 `json:"expiration_date"`
	StorageLocation *models.StorageLocation `json:"storage_location"`
	Status          *models.FoodStatus      `json:"status"`
	Disposition     *models.ItemDisposition `json:"disposition"`
	Price           *float64                `json:"price"`
	Currency        *string                 `json:"currency"`
	Notes           *string                 `json:"notes"`
}

func (s *FoodService) Update(id string, u FoodItemUpdate) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if u.Name != nil {
		if *u.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		updates["name"] = *u.Name
	}
	if u.Category != nil {
		if !u.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, *u.Category)
		}
		updates["category"] = *u.Category
	}
	if u.Quantity != nil {
		if *u.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
		}
		updates["quantity"] = *u.Quantity
	}
	if u.Unit != nil {
		updates["unit"] = *u.Unit
	}
	if u.PurchaseDate != nil {
		d, err := utils.ParseDate(*u.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: purchase date must be YYYY-MM-DD", ErrValidation)
		}
		updates["purchase_date"] = d
	}
	if u.ExpirationDate != nil {
		d, err := utils.ParseDate(*u.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiration date must be YYYY-MM-DD", ErrValidation)
		}
		updates["expiration_date"] = d
		if u.Status == nil && item.Disposition == models.DispositionActive {
			updates["status"] = ComputeStatus(d, utils.Today())
		}
	}
	if u.StorageLocation != nil {
		if !u.StorageLocation.Valid() {
			return nil, fmt.Errorf("%w: unknown storage location %q", ErrValidation, *u.StorageLocation)
		}
		updates["storage_location"] = *u.StorageLocation
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.Disposition != nil {
		if !u.Disposition.Valid() {
			return nil, fmt.Errorf("%w: unknown disposition %q", ErrValidation, *u.Disposition)
		}
		if item.Disposition != models.DispositionActive && *u.Disposition != item.Disposition {
			return nil, ErrDispositionFinal
		}
		updates["disposition"] = *u.Disposition
		// Leaving the inventory freezes the status as of now; the stored
		// value may be stale since reads never write it back.
		if *u.Disposition != models.DispositionActive && u.Status == nil {
			if _, ok := updates["status"]; !ok {
				updates["status"] = ComputeStatus(item.ExpirationDate, utils.Today())
			}
		}
	}
	if u.Price != nil {
		updates["price"] = *u.Price
	}
	if u.Currency != nil {
		updates["currency"] = *u.Currency
	}
	if u.Notes != nil {
		updates["notes"] = *u.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	Refresh(&item)
	return &item, nil
}

// SetDisposition moves an item out of the active inventory. The status it
// carries at that moment is the one it keeps.
func (s *FoodService) SetDisposition(id string, d models.ItemDisposition) (*models.FoodItem, error) {
	if d != models.DispositionConsumed && d != models.DispositionThrownAway {
		return nil, fmt.Errorf("%w: disposition must be consumed or thrown_away", ErrValidation)
	}

	var item models.FoodItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if item.Disposition != models.DispositionActive {
		return nil, ErrDispositionFinal
	}

	// Freeze the status as of now before the item leaves the inventory.
	status := ComputeStatus(item.ExpirationDate, utils.Today())
	if err := s.db.Model(&item).Updates(map[string]any{
		"disposition": d,
		"status":      status,
	}).Error; err != nil {
		return nil, err
	}
	item.Disposition = d
	item.Status = status
	return &item, nil
}

type FoodFilter struct {
	Category        models.FoodCategory
	StorageLocation models.StorageLocation
	Disposition     models.ItemDisposition
	Status          models.FoodStatus
	Search          string
}

// List returns items ordered by soonest expiration. Without an explicit
// disposition filter only the active inventory is returned. Statuses of
// active items are refreshed on the way out.
func (s *FoodService) List(f FoodFilter) ([]models.FoodItem, error) {
	q := s.db.Model(&models.FoodItem{})
	if f.Disposition != "" {
		q = q.Where("disposition = ?", f.Disposition)
	} else {
		q = q.Where("disposition = ?", models.DispositionActive)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.StorageLocation != "" {
		q = q.Where("storage_location = ?", f.StorageLocation)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}

	var items []models.FoodItem
	if err := q.Order("expiration_date ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		Refresh(&items[i])
	}
	return items, nil
}

func (s *FoodService) GetByID(id string) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	Refresh(&item)
	return &item, nil
}

// ExpiringSoon returns active items expiring within daysAhead days,
// today included, soonest first.
func (s *FoodService) ExpiringSoon(daysAhead int) ([]models.FoodItem, error) {
	today := utils.Today()
	end := today.AddDate(0, 0, daysAhead+1)

	var items []models.FoodItem
	err := s.db.
		Where("disposition = ? AND expiration_date >= ? AND expiration_date < ?",
			models.DispositionActive, today, end).
		Order("expiration_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for i := range items {
		Refresh(&items[i])
	}
	return items, nil
}

// Expired returns active items whose expiration date is strictly before
// today, soonest-expired first.
func (s *FoodService) Expired() ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.db.
		Where("disposition = ? AND expiration_date < ?",
			models.DispositionActive, utils.Today()).
		Order("expiration_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for i := range items {
		Refresh(&items[i])
	}
	return items, nil
}

// Delete removes an item and clears the weak references pointing at it.
// Meal items and shopping entries stay behind with the reference nulled.
func (s *FoodService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealItem{}).
			Where("food_item_id = ?", id).
			Update("food_item_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ShoppingListItem{}).
			Where("source_item_id = ?", id).
			Update("source_item_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.FoodItem{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
