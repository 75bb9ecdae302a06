package models

import "time"

// Alert records that an item crossed an expiration threshold. At most one
// alert exists per (item, type) so repeated checks do not re-notify.
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    string    `gorm:"type:varchar(36);uniqueIndex:idx_alerts_item_type" json:"item_id"`
	Type      string    `gorm:"size:20;uniqueIndex:idx_alerts_item_type" json:"type"` // "expiring" | "expired"
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
