package services

import (
	"encoding/json"
	"fmt"

	"freshkeep/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	settingNotifyDaysBefore = "notify_days_before"
	settingDailySummary     = "daily_summary"
	settingCurrency         = "currency"
	settingTheme            = "theme"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get assembles the typed settings from the key/value rows, falling back
// to the defaults for any key never written.
func (s *SettingsService) Get() (*models.AppSettings, error) {
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := models.DefaultSettings()
	for _, row := range rows {
		switch row.Key {
		case settingNotifyDaysBefore:
			var days []int
			if err := json.Unmarshal([]byte(row.Value), &days); err == nil {
				out.NotifyDaysBefore = days
			}
		case settingDailySummary:
			out.DailySummary = row.Value == "true"
		case settingCurrency:
			out.Currency = row.Value
		case settingTheme:
			out.Theme = row.Value
		}
	}
	return &out, nil
}

type SettingsUpdate struct {
	NotifyDaysBefore *[]int  `json:"notify_days_before"`
	DailySummary     *bool   `json:"daily_summary"`
	Currency         *string `json:"currency"`
	Theme            *string `json:"theme"`
}

// Update upserts only the supplied fields.
func (s *SettingsService) Update(u SettingsUpdate) (*models.AppSettings, error) {
	pending := map[string]string{}
	if u.NotifyDaysBefore != nil {
		for _, d := range *u.NotifyDaysBefore {
			if d < 0 {
				return nil, fmt.Errorf("%w: notify offsets must not be negative", ErrValidation)
			}
		}
		b, err := json.Marshal(*u.NotifyDaysBefore)
		if err != nil {
			return nil, err
		}
		pending[settingNotifyDaysBefore] = string(b)
	}
	if u.DailySummary != nil {
		if *u.DailySummary {
			pending[settingDailySummary] = "true"
		} else {
			pending[settingDailySummary] = "false"
		}
	}
	if u.Currency != nil {
		if len(*u.Currency) != 3 {
			return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrValidation)
		}
		pending[settingCurrency] = *u.Currency
	}
	if u.Theme != nil {
		switch *u.Theme {
		case "light", "dark", "system":
		default:
			return nil, fmt.Errorf("%w: theme must be light, dark or system", ErrValidation)
		}
		pending[settingTheme] = *u.Theme
	}

	for key, value := range pending {
		row := models.Setting{Key: key, Value: value}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&row).Error; err != nil {
			return nil, err
		}
	}
	return s.Get()
}
