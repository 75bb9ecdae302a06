package services_test

import (
	"testing"

	"freshkeep/models"
	"freshkeep/services"
	"freshkeep/testutil"
	"freshkeep/utils"

	"gorm.io/gorm"
)

func newAlertService(t *testing.T) (*services.AlertService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := services.NewAlertService(db,
		services.NewStatusService(db),
		services.NewSettingsService(db),
		services.NewRealtimeHub())
	return svc, db
}

func seedActiveItem(t *testing.T, db *gorm.DB, name string, daysOut int) models.FoodItem {
	t.Helper()
	item := models.FoodItem{
		Name:           name,
		ExpirationDate: utils.Today().AddDate(0, 0, daysOut),
		Disposition:    models.DispositionActive,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seeding %s: %v", name, err)
	}
	return item
}

func TestCheckExpirationsCreatesAlerts(t *testing.T) {
	svc, db := newAlertService(t)

	seedActiveItem(t, db, "Old Yogurt", -1)  // expired
	seedActiveItem(t, db, "Milk", 1)         // matches default offset 1
	seedActiveItem(t, db, "Cheese", 2)       // no default offset for 2
	seedActiveItem(t, db, "Frozen Peas", 10) // fresh

	created, err := svc.CheckExpirations()
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d alerts, want 2", len(created))
	}

	byName := map[string]string{}
	for _, a := range created {
		var item models.FoodItem
		if err := db.First(&item, "id = ?", a.ItemID).Error; err != nil {
			t.Fatalf("loading alerted item: %v", err)
		}
		byName[item.Name] = a.Type
	}
	if byName["Old Yogurt"] != "expired" {
		t.Errorf("Old Yogurt alert type = %q", byName["Old Yogurt"])
	}
	if byName["Milk"] != "expiring" {
		t.Errorf("Milk alert type = %q", byName["Milk"])
	}
}

func TestCheckExpirationsAlertsOncePerType(t *testing.T) {
	svc, db := newAlertService(t)
	seedActiveItem(t, db, "Milk", 0)

	first, err := svc.CheckExpirations()
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first check created %d alerts, want 1", len(first))
	}

	second, err := svc.CheckExpirations()
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second check created %d alerts, want 0", len(second))
	}
}

func TestCheckExpirationsRespectsOffsets(t *testing.T) {
	svc, db := newAlertService(t)

	settings := services.NewSettingsService(db)
	if _, err := settings.Update(services.SettingsUpdate{NotifyDaysBefore: &[]int{2}}); err != nil {
		t.Fatalf("updating settings: %v", err)
	}

	seedActiveItem(t, db, "Ham", 1) // not a configured offset anymore
	seedActiveItem(t, db, "Eggs", 2)

	created, err := svc.CheckExpirations()
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d alerts, want 1", len(created))
	}
	if created[0].Type != "expiring" {
		t.Errorf("type = %q", created[0].Type)
	}
}

func TestCheckExpirationsOffsetBeyondStatusCutoff(t *testing.T) {
	svc, db := newAlertService(t)

	settings := services.NewSettingsService(db)
	if _, err := settings.Update(services.SettingsUpdate{NotifyDaysBefore: &[]int{5}}); err != nil {
		t.Fatalf("updating settings: %v", err)
	}

	seedActiveItem(t, db, "Chicken", 5) // still fresh, but the offset matches
	seedActiveItem(t, db, "Butter", 6)  // past every offset

	created, err := svc.CheckExpirations()
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d alerts, want 1 for the 5-day offset", len(created))
	}
	if created[0].Type != "expiring" {
		t.Errorf("type = %q", created[0].Type)
	}
}

func TestCheckExpirationsSkipsNonActive(t *testing.T) {
	svc, db := newAlertService(t)

	item := seedActiveItem(t, db, "Tossed Bread", -3)
	if err := db.Model(&item).UpdateColumn("disposition", models.DispositionThrownAway).Error; err != nil {
		t.Fatalf("updating disposition: %v", err)
	}

	created, err := svc.CheckExpirations()
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d alerts for a discarded item, want 0", len(created))
	}
}

func TestAlertListLimit(t *testing.T) {
	svc, db := newAlertService(t)

	for i := 0; i < 5; i++ {
		seedActiveItem(t, db, "Item", -1-i)
	}
	if _, err := svc.CheckExpirations(); err != nil {
		t.Fatalf("check: %v", err)
	}

	alerts, err := svc.List(3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(alerts) != 3 {
		t.Errorf("len = %d, want 3", len(alerts))
	}
}
