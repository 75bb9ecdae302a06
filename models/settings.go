package models

// Setting is a single row of the key/value settings store.
type Setting struct {
	Key   string `gorm:"primaryKey;type:varchar(50)" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

func (Setting) TableName() string { return "settings" }

// AppSettings is the typed view over the settings table. There is one
// canonical instance per installation.
type AppSettings struct {
	NotifyDaysBefore []int  `json:"notify_days_before"`
	DailySummary     bool   `json:"daily_summary"`
	Currency         string `json:"currency"`
	Theme            string `json:"theme"` // "light" | "dark" | "system"
}

func DefaultSettings() AppSettings {
	return AppSettings{
		NotifyDaysBefore: []int{3, 1, 0},
		DailySummary:     true,
		Currency:         "MXN",
		Theme:            "system",
	}
}
