package services

import (
	"freshkeep/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db     *gorm.DB
	status *StatusService
}

func NewStatsService(db *gorm.DB, status *StatusService) *StatsService {
	return &StatsService{db: db, status: status}
}

type InventoryStats struct {
	Total       int64   `json:"total"`
	Fresh       int64   `json:"fresh"`
	Expiring    int64   `json:"expiring"`
	Expired     int64   `json:"expired"`
	TotalValue  float64 `json:"total_value"`
	WastedValue float64 `json:"wasted_value"`
}

// Inventory refreshes statuses and then counts the active inventory by
// status. Items without a price contribute nothing to the sums.
func (s *StatsService) Inventory() (*InventoryStats, error) {
	if err := s.status.RefreshAll(); err != nil {
		return nil, err
	}

	out := &InventoryStats{}

	if err := s.db.Model(&models.FoodItem{}).
		Where("disposition = ?", models.DispositionActive).
		Count(&out.Total).Error; err != nil {
		return nil, err
	}

	for _, byStatus := range []struct {
		status models.FoodStatus
		dest   *int64
	}{
		{models.StatusFresh, &out.Fresh},
		{models.StatusExpiring, &out.Expiring},
		{models.StatusExpired, &out.Expired},
	} {
		if err := s.db.Model(&models.FoodItem{}).
			Where("disposition = ? AND status = ?", models.DispositionActive, byStatus.status).
			Count(byStatus.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&models.FoodItem{}).
		Where("disposition = ? AND price IS NOT NULL", models.DispositionActive).
		Select("COALESCE(SUM(price), 0)").
		Scan(&out.TotalValue).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.FoodItem{}).
		Where("disposition = ? AND price IS NOT NULL", models.DispositionThrownAway).
		Select("COALESCE(SUM(price), 0)").
		Scan(&out.WastedValue).Error; err != nil {
		return nil, err
	}

	return out, nil
}

type CategoryWaste struct {
	Category string `json:"category"`
	Wasted   int64  `json:"wasted"`
	Consumed int64  `json:"consumed"`
}

type WasteStats struct {
	TotalWasted   int64           `json:"total_wasted"`
	TotalConsumed int64           `json:"total_consumed"`
	WastedValue   float64         `json:"wasted_value"`
	SavedValue    float64         `json:"saved_value"`
	ByCategory    []CategoryWaste `json:"by_category"`
}

// Waste tallies what left the inventory and why, overall and per category.
func (s *StatsService) Waste() (*WasteStats, error) {
	out := &WasteStats{ByCategory: []CategoryWaste{}}

	if err := s.db.Model(&models.FoodItem{}).
		Where("disposition = ?", models.DispositionThrownAway).
		Count(&out.TotalWasted).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.FoodItem{}).
		Where("disposition = ?", models.DispositionConsumed).
		Count(&out.TotalConsumed).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.FoodItem{}).
		Where("disposition = ? AND price IS NOT NULL", models.DispositionThrownAway).
		Select("COALESCE(SUM(price), 0)").
		Scan(&out.WastedValue).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.FoodItem{}).
		Where("disposition = ? AND price IS NOT NULL", models.DispositionConsumed).
		Select("COALESCE(SUM(price), 0)").
		Scan(&out.SavedValue).Error; err != nil {
		return nil, err
	}

	err := s.db.Model(&models.FoodItem{}).
		Select(`category,
			SUM(CASE WHEN disposition = ? THEN 1 ELSE 0 END) AS wasted,
			SUM(CASE WHEN disposition = ? THEN 1 ELSE 0 END) AS consumed`,
			models.DispositionThrownAway, models.DispositionConsumed).
		Where("disposition IN ?", []models.ItemDisposition{
			models.DispositionThrownAway, models.DispositionConsumed,
		}).
		Group("category").
		Scan(&out.ByCategory).Error
	if err != nil {
		return nil, err
	}

	return out, nil
}
