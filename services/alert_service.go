package services

import (
	"fmt"

	"freshkeep/models"
	"freshkeep/utils"

	"gorm.io/gorm"
)

type AlertService struct {
	db       *gorm.DB
	status   *StatusService
	settings *SettingsService
	hub      *RealtimeHub
}

func NewAlertService(db *gorm.DB, status *StatusService, settings *SettingsService, hub *RealtimeHub) *AlertService {
	return &AlertService{db: db, status: status, settings: settings, hub: hub}
}

// CheckExpirations refreshes statuses and records an alert for each
// active item that expired or whose days-to-expiry match a configured
// notify offset. An item alerts at most once per type; only the alerts
// created by this call are broadcast and returned.
func (s *AlertService) CheckExpirations() ([]models.Alert, error) {
	if err := s.status.RefreshAll(); err != nil {
		return nil, err
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	offsets := map[int]bool{}
	maxOffset := 0
	for _, d := range settings.NotifyDaysBefore {
		offsets[d] = true
		if d > maxOffset {
			maxOffset = d
		}
	}

	// Offsets may reach past the expiring-status cutoff, so candidates
	// are selected by expiration date, not by status.
	today := utils.Today()
	horizon := today.AddDate(0, 0, maxOffset+1)

	var items []models.FoodItem
	if err := s.db.
		Where("disposition = ? AND expiration_date < ?", models.DispositionActive, horizon).
		Order("expiration_date ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	var created []models.Alert
	for _, item := range items {
		days := utils.DaysBetween(today, item.ExpirationDate)

		var typ string
		switch {
		case days < 0:
			typ = "expired"
		case offsets[days]:
			typ = "expiring"
		default:
			continue
		}

		alert := models.Alert{
			ItemID:  item.ID,
			Type:    typ,
			Message: fmt.Sprintf("%s %s", item.Name, ExpirationLabel(item.ExpirationDate, today)),
		}
		res := s.db.Where("item_id = ? AND type = ?", item.ID, typ).FirstOrCreate(&alert)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			continue // already alerted
		}

		created = append(created, alert)
		if s.hub != nil {
			s.hub.Broadcast(map[string]any{
				"kind":  "alert.created",
				"alert": alert,
			})
		}
	}
	return created, nil
}

// List returns the most recent alerts, newest first.
func (s *AlertService) List(limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	var alerts []models.Alert
	err := s.db.Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}
