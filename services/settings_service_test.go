package services_test

import (
	"errors"
	"reflect"
	"testing"

	"freshkeep/services"
	"freshkeep/testutil"
)

func TestSettingsServiceDefaults(t *testing.T) {
	svc := services.NewSettingsService(testutil.NewTestDB(t))

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("getting settings: %v", err)
	}
	if !reflect.DeepEqual(settings.NotifyDaysBefore, []int{3, 1, 0}) {
		t.Errorf("notify offsets = %v, want [3 1 0]", settings.NotifyDaysBefore)
	}
	if !settings.DailySummary {
		t.Error("daily summary should default to on")
	}
	if settings.Currency != "MXN" {
		t.Errorf("currency = %q, want MXN", settings.Currency)
	}
	if settings.Theme != "system" {
		t.Errorf("theme = %q, want system", settings.Theme)
	}
}

func TestSettingsServicePartialUpdate(t *testing.T) {
	svc := services.NewSettingsService(testutil.NewTestDB(t))

	updated, err := svc.Update(services.SettingsUpdate{
		Currency: ptr("USD"),
	})
	if err != nil {
		t.Fatalf("updating settings: %v", err)
	}
	if updated.Currency != "USD" {
		t.Errorf("currency = %q, want USD", updated.Currency)
	}
	// untouched fields keep their defaults
	if updated.Theme != "system" || !updated.DailySummary {
		t.Errorf("partial update clobbered other settings: %+v", updated)
	}
}

func TestSettingsServiceUpdateOverwrites(t *testing.T) {
	svc := services.NewSettingsService(testutil.NewTestDB(t))

	if _, err := svc.Update(services.SettingsUpdate{Theme: ptr("dark")}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := svc.Update(services.SettingsUpdate{
		Theme:            ptr("light"),
		NotifyDaysBefore: &[]int{7, 2},
		DailySummary:     ptr(false),
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("getting settings: %v", err)
	}
	if settings.Theme != "light" {
		t.Errorf("theme = %q, want light", settings.Theme)
	}
	if !reflect.DeepEqual(settings.NotifyDaysBefore, []int{7, 2}) {
		t.Errorf("notify offsets = %v, want [7 2]", settings.NotifyDaysBefore)
	}
	if settings.DailySummary {
		t.Error("daily summary should be off")
	}
}

func TestSettingsServiceValidation(t *testing.T) {
	svc := services.NewSettingsService(testutil.NewTestDB(t))

	if _, err := svc.Update(services.SettingsUpdate{Theme: ptr("neon")}); !errors.Is(err, services.ErrValidation) {
		t.Errorf("bad theme: err = %v, want validation error", err)
	}
	if _, err := svc.Update(services.SettingsUpdate{Currency: ptr("DOLLARS")}); !errors.Is(err, services.ErrValidation) {
		t.Errorf("bad currency: err = %v, want validation error", err)
	}
	if _, err := svc.Update(services.SettingsUpdate{NotifyDaysBefore: &[]int{-1}}); !errors.Is(err, services.ErrValidation) {
		t.Errorf("negative offset: err = %v, want validation error", err)
	}
}
