package services

import (
	"fmt"
	"math"
	"time"

	"freshkeep/models"
	"freshkeep/utils"

	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type MealItemInput struct {
	FoodItemID *string `json:"food_item_id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Fats       float64 `json:"fats"`
	Carbs      float64 `json:"carbs"`
}

type MealInput struct {
	Name        string          `json:"name"`
	MealType    models.MealType `json:"meal_type"`
	Date        string          `json:"date"`
	Calories    float64         `json:"calories"`
	Protein     float64         `json:"protein"`
	Fats        float64         `json:"fats"`
	Carbs       float64         `json:"carbs"`
	ServingSize string          `json:"serving_size"`
	Emoji       string          `json:"emoji"`
	Notes       string          `json:"notes"`
	Source      string          `json:"source"`
	Items       []MealItemInput `json:"items"`
}

func (s *MealService) AddMeal(in MealInput) (*models.Meal, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !in.MealType.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrValidation, in.MealType)
	}
	date, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if in.Source == "" {
		in.Source = "manual"
	}

	meal := models.Meal{
		Name:        in.Name,
		MealType:    in.MealType,
		Date:        date,
		Calories:    in.Calories,
		Protein:     in.Protein,
		Fats:        in.Fats,
		Carbs:       in.Carbs,
		ServingSize: in.ServingSize,
		Emoji:       in.Emoji,
		Notes:       in.Notes,
		Source:      in.Source,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		return createMealItems(tx, meal.ID, in.Items)
	})
	if err != nil {
		return nil, err
	}

	// reload with items
	var populated models.Meal
	if err := s.db.Preload("Items").First(&populated, "id = ?", meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func createMealItems(tx *gorm.DB, mealID string, items []MealItemInput) error {
	for _, it := range items {
		mi := models.MealItem{
			MealID:     mealID,
			FoodItemID: it.FoodItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Unit:       it.Unit,
			Calories:   it.Calories,
			Protein:    it.Protein,
			Fats:       it.Fats,
			Carbs:      it.Carbs,
		}
		if err := tx.Create(&mi).Error; err != nil {
			return err
		}
	}
	return nil
}

type MealUpdate struct {
	Name        *string          `json:"name"`
	MealType    *models.MealType `json:"meal_type"`
	Date        *string          `json:"date"`
	Calories    *float64         `json:"calories"`
	Protein     *float64         `json:"protein"`
	Fats        *float64         `json:"fats"`
	Carbs       *float64         `json:"carbs"`
	ServingSize *string          `json:"serving_size"`
	Emoji       *string          `json:"emoji"`
	Notes       *string          `json:"notes"`
	Source      *string          `json:"source"`
	Items       *[]MealItemInput `json:"items"`
}

// UpdateMeal writes only the supplied fields. Supplying items replaces
// the whole item list.
func (s *MealService) UpdateMeal(id string, u MealUpdate) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.First(&meal, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if u.Name != nil {
		if *u.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		updates["name"] = *u.Name
	}
	if u.MealType != nil {
		if !u.MealType.Valid() {
			return nil, fmt.Errorf("%w: unknown meal type %q", ErrValidation, *u.MealType)
		}
		updates["meal_type"] = *u.MealType
	}
	if u.Date != nil {
		d, err := utils.ParseDate(*u.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		updates["date"] = d
	}
	if u.Calories != nil {
		updates["calories"] = *u.Calories
	}
	if u.Protein != nil {
		updates["protein"] = *u.Protein
	}
	if u.Fats != nil {
		updates["fats"] = *u.Fats
	}
	if u.Carbs != nil {
		updates["carbs"] = *u.Carbs
	}
	if u.ServingSize != nil {
		updates["serving_size"] = *u.ServingSize
	}
	if u.Emoji != nil {
		updates["emoji"] = *u.Emoji
	}
	if u.Notes != nil {
		updates["notes"] = *u.Notes
	}
	if u.Source != nil {
		updates["source"] = *u.Source
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&meal).Updates(updates).Error; err != nil {
				return err
			}
		}
		if u.Items != nil {
			// replace items wholesale
			if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
				return err
			}
			return createMealItems(tx, meal.ID, *u.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated models.Meal
	if err := s.db.Preload("Items").First(&updated, "id = ?", meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MealService) DeleteMeal(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", id).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Meal{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *MealService) GetMeal(id string) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.Preload("Items").First(&meal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) ListByDate(date time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("date = ?", utils.DayStart(date)).
		Order("created_at ASC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListByDateAndType(date time.Time, mealType models.MealType) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("date = ? AND meal_type = ?", utils.DayStart(date), mealType).
		Order("created_at ASC").
		Find(&meals).Error
	return meals, err
}

type DailyNutrition struct {
	Date          string        `json:"date"`
	TotalCalories float64       `json:"total_calories"`
	TotalProtein  float64       `json:"total_protein"`
	TotalFats     float64       `json:"total_fats"`
	TotalCarbs    float64       `json:"total_carbs"`
	Meals         []models.Meal `json:"meals"`
}

// DailyNutrition sums the declared macros of every meal on the date. The
// meals' own totals are authoritative; item-level macros are ignored.
func (s *MealService) DailyNutrition(date time.Time) (*DailyNutrition, error) {
	meals, err := s.ListByDate(date)
	if err != nil {
		return nil, err
	}

	out := &DailyNutrition{
		Date:  utils.FormatDate(utils.DayStart(date)),
		Meals: meals,
	}
	for _, m := range meals {
		out.TotalCalories += m.Calories
		out.TotalProtein += m.Protein
		out.TotalFats += m.Fats
		out.TotalCarbs += m.Carbs
	}
	out.TotalCalories = round1(out.TotalCalories)
	out.TotalProtein = round1(out.TotalProtein)
	out.TotalFats = round1(out.TotalFats)
	out.TotalCarbs = round1(out.TotalCarbs)
	return out, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
