package services

import (
	"fmt"
	"time"

	"freshkeep/models"
	"freshkeep/utils"

	"gorm.io/gorm"
)

// ExpiringSoonDays is the status cutoff: an active item expiring within
// this many days counts as "expiring".
const ExpiringSoonDays = 3

// labelAbsoluteAfterDays is where the relative label switches to an
// absolute date. It is a display policy unrelated to ExpiringSoonDays;
// keep the two apart.
const labelAbsoluteAfterDays = 7

type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// ComputeStatus derives the freshness status of an item expiring on
// expiration, as seen from reference. Both are compared by calendar date.
func ComputeStatus(expiration, reference time.Time) models.FoodStatus {
	diff := utils.DaysBetween(reference, expiration)
	switch {
	case diff < 0:
		return models.StatusExpired
	case diff <= ExpiringSoonDays:
		return models.StatusExpiring
	default:
		return models.StatusFresh
	}
}

// ExpirationLabel renders the relative expiration phrase shown on item
// cards. Beyond a week it shows the absolute date instead.
func ExpirationLabel(expiration, reference time.Time) string {
	days := utils.DaysBetween(reference, expiration)
	switch {
	case days < 0:
		if days == -1 {
			return "expired 1 day ago"
		}
		return fmt.Sprintf("expired %d days ago", -days)
	case days == 0:
		return "expires today"
	case days == 1:
		return "expires tomorrow"
	case days <= labelAbsoluteAfterDays:
		return fmt.Sprintf("expires in %d days", days)
	default:
		return "expires " + utils.ShortDate(expiration)
	}
}

// Refresh recomputes the derived status of an item in memory. Terminal
// items keep whatever status they froze at.
func Refresh(item *models.FoodItem) {
	if item.Disposition != models.DispositionActive {
		return
	}
	item.Status = ComputeStatus(item.ExpirationDate, utils.Today())
}

// RefreshAll persists statuses for every active item in one transaction,
// so readers never observe a half-refreshed inventory. UpdateColumn keeps
// updated_at untouched; running it twice is a no-op.
func (s *StatusService) RefreshAll() error {
	today := utils.Today()
	expiringEnd := today.AddDate(0, 0, ExpiringSoonDays+1)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FoodItem{}).
			Where("disposition = ? AND expiration_date < ? AND status <> ?",
				models.DispositionActive, today, models.StatusExpired).
			UpdateColumn("status", models.StatusExpired).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.FoodItem{}).
			Where("disposition = ? AND expiration_date >= ? AND expiration_date < ? AND status <> ?",
				models.DispositionActive, today, expiringEnd, models.StatusExpiring).
			UpdateColumn("status", models.StatusExpiring).Error; err != nil {
			return err
		}
		return tx.Model(&models.FoodItem{}).
			Where("disposition = ? AND expiration_date >= ? AND status <> ?",
				models.DispositionActive, expiringEnd, models.StatusFresh).
			UpdateColumn("status", models.StatusFresh).Error
	})
}
