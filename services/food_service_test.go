package services_test

import (
	"errors"
	"testing"

	"freshkeep/models"
	"freshkeep/services"
	"freshkeep/testutil"
	"freshkeep/utils"

	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func dateString(daysFromToday int) string {
	return utils.FormatDate(utils.Today().AddDate(0, 0, daysFromToday))
}

func TestFoodServiceCreateValidation(t *testing.T) {
	svc := services.NewFoodService(testutil.NewTestDB(t))

	_, err := svc.Create(services.FoodItemInput{ExpirationDate: dateString(5)})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("missing name: err = %v, want validation error", err)
	}

	_, err = svc.Create(services.FoodItemInput{Name: "Milk"})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("missing expiration: err = %v, want validation error", err)
	}

	_, err = svc.Create(services.FoodItemInput{Name: "Milk", ExpirationDate: "05/03/2026"})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("bad date format: err = %v, want validation error", err)
	}
}

func TestFoodServiceCreateDerivesStatus(t *testing.T) {
	svc := services.NewFoodService(testutil.NewTestDB(t))

	item, err := svc.Create(services.FoodItemInput{Name: "Milk", ExpirationDate: dateString(2)})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	if item.Status != models.StatusExpiring {
		t.Errorf("status = %s, want expiring", item.Status)
	}
	if item.Disposition != models.DispositionActive {
		t.Errorf("disposition = %s, want active", item.Disposition)
	}
	if item.Category != models.CategoryOther || item.Unit != "pcs" || item.Quantity != 1 {
		t.Errorf("defaults not applied: %+v", item)
	}
}

func TestFoodServicePartialUpdate(t *testing.T) {
	svc := services.NewFoodService(testutil.NewTestDB(t))

	item, err := svc.Create(services.FoodItemInput{
		Name:           "Bread",
		Category:       models.CategoryCereals,
		ExpirationDate: dateString(10),
		Notes:          "whole grain",
	})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}

	updated, err := svc.Update(item.ID, services.FoodItemUpdate{Quantity: ptr(2.0)})
	if err != nil {
		t.Fatalf("updating item: %v", err)
	}
	if updated.Quantity != 2 {
		t.Errorf("quantity = %v, want 2", updated.Quantity)
	}
	// untouched fields survive
	if updated.Name != "Bread" || updated.Category != models.CategoryCereals || updated.Notes != "whole grain" {
		t.Errorf("partial update clobbered other fields: %+v", updated)
	}
}

func TestFoodServiceUpdateExpirationRecomputesStatus(t *testing.T) {
	svc := services.NewFoodService(testutil.NewTestDB(t))

	item, err := svc.Create(services.FoodItemInput{Name: "Ham", ExpirationDate: dateString(10)})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	if item.Status != models.StatusFresh {
		t.Fatalf("status = %s, want fresh", item.Status)
	}

	updated, err := svc.Update(item.ID, services.FoodItemUpdate{ExpirationDate: ptr(dateString(1))})
	if err != nil {
		t.Fatalf("updating item: %v", err)
	}
	if updated.Status != models.StatusExpiring {
		t.Errorf("status after expiration change = %s, want expiring", updated.Status)
	}
}

func TestFoodServiceDispositionIsOneWay(t *testing.T) {
	svc := services.NewFoodService(testutil.NewTestDB(t))

	item, err := svc.Create(services.FoodItemInput{Name: "Yogurt", ExpirationDate: dateString(1)})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}

	consumed, err := svc.SetDisposition(item.ID, models.DispositionConsumed)
	if err != nil {
		t.Fatalf("consuming item: %v", err)
	}
	if consumed.Disposition != models.DispositionConsumed {
		t.Errorf("disposition = %s, want consumed", consumed.Disposition)
	}

	if _, err := svc.SetDisposition(item.ID, models.DispositionThrownAway); !errors.Is(err, services.ErrDispositionFinal) {
		t.Errorf("second transition: err = %v, want ErrDispositionFinal", err)
	}
	if _, err := svc.Update(item.ID, services.FoodItemUpdate{
		Disposition: ptr(models.DispositionActive),
	}); !errors.Is(err, services.ErrDispositionFinal) {
		t.Errorf("reactivating: err = %v, want ErrDispositionFinal", err)
	}
}

func TestFoodServiceListDefaultsToActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := services.NewFoodService(db)

	active, err := svc.Create(services.FoodItemInput{Name: "Apples", ExpirationDate: dateString(5)})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	gone, err := svc.Create(services.FoodItemInput{Name: "Old rice", ExpirationDate: dateString(5)})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	if _, err := svc.SetDisposition(gone.ID, models.DispositionThrownAway); err != nil {
		t.Fatalf("discarding item: %v", err)
	}

	items, err := svc.List(services.FoodFilter{})
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(items) != 1 || items[0].ID != active.ID {
		t.Errorf("default list = %d items, want only the active one", len(items))
	}
}

func TestFoodServiceExpiringAndExpiredQueries(t *testing.T) {
	svc := services.NewFoodService(testutil.NewTestDB(t))

	mk := func(name string, days int) {
		t.Helper()
		if _, err := svc.Create(services.FoodItemInput{Name: name, ExpirationDate: dateString(days)}); err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
	}
	mk("way past", -10)
	mk("just past", -1)
	mk("today", 0)
	mk("soon", 2)
	mk("edge", 3)
	mk("later", 4)
	mk("far", 30)

	expiring, err := svc.ExpiringSoon(3)
	if err != nil {
		t.Fatalf("expiring query: %v", err)
	}
	gotNames := []string{}
	for _, item := range expiring {
		gotNames = append(gotNames, item.Name)
	}
	wantNames := []string{"today", "soon", "edge"}
	if len(gotNames) != len(wantNames) {
		t.Fatalf("expiring = %v, want %v", gotNames, wantNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Errorf("expiring[%d] = %s, want %s (ascending expiration order)", i, gotNames[i], wantNames[i])
		}
	}

	expired, err := svc.Expired()
	if err != nil {
		t.Fatalf("expired query: %v", err)
	}
	if len(expired) != 2 || expired[0].Name != "way past" || expired[1].Name != "just past" {
		t.Errorf("expired query returned wrong items or order: %+v", expired)
	}
	for _, item := range expired {
		if item.Status != models.StatusExpired {
			t.Errorf("%s: lazy refresh missed, status = %s", item.Name, item.Status)
		}
	}
}

func TestFoodServiceDeleteClearsWeakReferences(t *testing.T) {
	db := testutil.NewTestDB(t)
	foods := services.NewFoodService(db)
	meals := services.NewMealService(db)

	item, err := foods.Create(services.FoodItemInput{Name: "Chicken", ExpirationDate: dateString(2)})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}

	meal, err := meals.AddMeal(services.MealInput{
		Name:     "Chicken salad",
		MealType: models.MealLunch,
		Date:     dateString(0),
		Calories: 420,
		Items: []services.MealItemInput{
			{FoodItemID: &item.ID, Name: "Chicken", Quantity: 200, Unit: "g"},
		},
	})
	if err != nil {
		t.Fatalf("creating meal: %v", err)
	}

	if err := foods.Delete(item.ID); err != nil {
		t.Fatalf("deleting item: %v", err)
	}

	reloaded, err := meals.GetMeal(meal.ID)
	if err != nil {
		t.Fatalf("meal should survive the item deletion: %v", err)
	}
	if len(reloaded.Items) != 1 {
		t.Fatalf("meal items = %d, want 1", len(reloaded.Items))
	}
	if reloaded.Items[0].FoodItemID != nil {
		t.Errorf("food reference = %v, want nil", *reloaded.Items[0].FoodItemID)
	}
	if reloaded.Items[0].Name != "Chicken" {
		t.Errorf("meal item lost its own data: %+v", reloaded.Items[0])
	}
}

func TestFoodServiceUpdateDispositionFreezesCurrentStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := services.NewFoodService(db)

	// a row whose stored status went stale since its last write
	stale := models.FoodItem{
		Name:           "Yogurt",
		ExpirationDate: utils.Today().AddDate(0, 0, -2),
		Status:         models.StatusExpiring,
		Disposition:    models.DispositionActive,
	}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("seeding item: %v", err)
	}

	item, err := svc.Update(stale.ID, services.FoodItemUpdate{
		Disposition: ptr(models.DispositionThrownAway),
	})
	if err != nil {
		t.Fatalf("updating disposition: %v", err)
	}
	if item.Status != models.StatusExpired {
		t.Errorf("status = %q, want the recomputed expired", item.Status)
	}

	var stored models.FoodItem
	if err := db.First(&stored, "id = ?", stale.ID).Error; err != nil {
		t.Fatalf("reloading item: %v", err)
	}
	if stored.Status != models.StatusExpired {
		t.Errorf("stored status = %q, want expired frozen at disposal", stored.Status)
	}
}

func TestFoodServiceDeleteMissing(t *testing.T) {
	svc := services.NewFoodService(testutil.NewTestDB(t))
	if err := svc.Delete("no-such-id"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}
