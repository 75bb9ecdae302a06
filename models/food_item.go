package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoodCategory string

const (
	CategoryFruits     FoodCategory = "fruits"
	CategoryVegetables FoodCategory = "vegetables"
	CategoryDairy      FoodCategory = "dairy"
	CategoryCereals    FoodCategory = "cereals"
	CategoryCanned     FoodCategory = "canned"
	CategoryMeat       FoodCategory = "meat"
	CategoryFrozen     FoodCategory = "frozen"
	CategoryBeverages  FoodCategory = "beverages"
	CategoryCondiments FoodCategory = "condiments"
	CategorySnacks     FoodCategory = "snacks"
	CategoryOther      FoodCategory = "other"
)

var FoodCategories = []FoodCategory{
	CategoryFruits, CategoryVegetables, CategoryDairy, CategoryCereals,
	CategoryCanned, CategoryMeat, CategoryFrozen, CategoryBeverages,
	CategoryCondiments, CategorySnacks, CategoryOther,
}

func (c FoodCategory) Valid() bool {
	for _, v := range FoodCategories {
		if c == v {
			return true
		}
	}
	return false
}

type StorageLocation string

const (
	LocationFridge  StorageLocation = "fridge"
	LocationFreezer StorageLocation = "freezer"
	LocationPantry  StorageLocation = "pantry"
	LocationCounter StorageLocation = "counter"
)

var StorageLocations = []StorageLocation{
	LocationFridge, LocationFreezer, LocationPantry, LocationCounter,
}

func (l StorageLocation) Valid() bool {
	for _, v := range StorageLocations {
		if l == v {
			return true
		}
	}
	return false
}

// FoodStatus is derived from the expiration date; it is only meaningful
// while the item is still active.
type FoodStatus string

const (
	StatusFresh    FoodStatus = "fresh"
	StatusExpiring FoodStatus = "expiring"
	StatusExpired  FoodStatus = "expired"
)

// ItemDisposition tracks what became of an item. Transitions out of
// "active" are one way; a terminal item keeps its last computed status.
type ItemDisposition string

const (
	DispositionActive     ItemDisposition = "active"
	DispositionConsumed   ItemDisposition = "consumed"
	DispositionThrownAway ItemDisposition = "thrown_away"
)

func (d ItemDisposition) Valid() bool {
	return d == DispositionActive || d == DispositionConsumed || d == DispositionThrownAway
}

type FoodItem struct {
	ID              string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Category        FoodCategory    `gorm:"type:varchar(20);default:'other';index" json:"category"`
	Quantity        float64         `gorm:"default:1" json:"quantity"`
	Unit            string          `gorm:"type:varchar(20);default:'pcs'" json:"unit"`
	PurchaseDate    time.Time       `json:"purchase_date"`
	ExpirationDate  time.Time       `gorm:"index" json:"expiration_date"`
	StorageLocation StorageLocation `gorm:"type:varchar(20);default:'fridge'" json:"storage_location"`
	Status          FoodStatus      `gorm:"type:varchar(20);default:'fresh';index" json:"status"`
	Disposition     ItemDisposition `gorm:"type:varchar(20);default:'active';index" json:"disposition"`
	Price           *float64        `json:"price"`
	Currency        string          `gorm:"type:varchar(3);default:'MXN'" json:"currency"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
