package freshness

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

func newTestItem(t *testing.T, pref domain.WashPreference) *domain.ClothingItem {
	t.Helper()
	item, err := domain.NewClothingItem(
		uuid.New(),
		domain.ItemAttributes{Category: "tops", Material: "cotton"},
		[]float64{0.1, 0.2, 0.3},
		pref,
	)
	if err != nil {
		t.Fatalf("Expected no error creating item, got %v", err)
	}
	return item
}

func TestApplyWearAfterEachWear(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	item := newTestItem(t, domain.WashAfterEachWear)
	now := time.Now().UTC()

	// One wear must drop the item below the NEEDS_WASH threshold.
	worn, err := svc.ApplyWear(item, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if worn.WearCount != 1 {
		t.Errorf("Expected wear count 1, got %d", worn.WearCount)
	}
	if worn.Status != domain.StatusNeedsWash {
		t.Errorf("Expected status %q after one wear, got %q", domain.StatusNeedsWash, worn.Status)
	}
	if !worn.LastWornAt.Equal(now) {
		t.Errorf("Expected last worn at %v, got %v", now, worn.LastWornAt)
	}

	// The input item must not have been mutated.
	if item.WearCount != 0 || item.Status != domain.StatusFresh {
		t.Errorf("Input item was mutated: wearCount=%d status=%q", item.WearCount, item.Status)
	}
}

func TestApplyWearScoreStaysInBounds(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	for _, pref := range []domain.WashPreference{
		domain.WashAfterEachWear,
		domain.WashAfterFewWears,
		domain.WashManual,
	} {
		item := newTestItem(t, pref)
		for i := 0; i < 50; i++ {
			next, err := svc.ApplyWear(item, now)
			if err != nil {
				t.Fatalf("pref %s wear %d: unexpected error %v", pref, i, err)
			}
			if next.FreshnessScore < domain.MinFreshnessScore ||
				next.FreshnessScore > domain.MaxFreshnessScore {
				t.Fatalf("pref %s wear %d: score %d out of bounds", pref, i, next.FreshnessScore)
			}
			item = next
		}
	}
}

func TestApplyWearRejectedInLaundryPipeline(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	item := newTestItem(t, domain.WashAfterFewWears)
	inLaundry, err := svc.AddToLaundry(item, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := svc.ApplyWear(inLaundry, now); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
}

func TestFullLaundryLifecycle(t *testing.T) {
	t.Parallel()
	// Scenario: four wears at step 25 run the score down to 0 and
	// NEEDS_WASH, then the item goes through the full laundry cycle and
	// comes back reset.
	svc := NewServiceWithParams(NewParams(ParamsConfig{AfterFewWearsDecay: 25}))
	now := time.Now().UTC()

	item := newTestItem(t, domain.WashAfterFewWears)
	if item.FreshnessScore != 100 || item.Status != domain.StatusFresh {
		t.Fatalf("Expected new item at 100/fresh, got %d/%q", item.FreshnessScore, item.Status)
	}

	for i := 0; i < 4; i++ {
		next, err := svc.ApplyWear(item, now)
		if err != nil {
			t.Fatalf("wear %d: unexpected error %v", i+1, err)
		}
		item = next
	}

	if item.FreshnessScore != 0 {
		t.Errorf("Expected score 0 after four wears, got %d", item.FreshnessScore)
	}
	if item.Status != domain.StatusNeedsWash {
		t.Errorf("Expected status %q, got %q", domain.StatusNeedsWash, item.Status)
	}

	item, err := svc.AddToLaundry(item, now)
	if err != nil {
		t.Fatalf("add to laundry: %v", err)
	}
	if item.Status != domain.StatusInLaundry {
		t.Errorf("Expected status %q, got %q", domain.StatusInLaundry, item.Status)
	}

	item, err = svc.MarkWashed(item, now)
	if err != nil {
		t.Fatalf("mark washed: %v", err)
	}
	if item.Status != domain.StatusWashed {
		t.Errorf("Expected status %q, got %q", domain.StatusWashed, item.Status)
	}

	item, err = svc.ReturnToRotation(item, now)
	if err != nil {
		t.Fatalf("return to rotation: %v", err)
	}
	if item.Status != domain.StatusReadyToWear {
		t.Errorf("Expected status %q, got %q", domain.StatusReadyToWear, item.Status)
	}
	if item.FreshnessScore != 100 {
		t.Errorf("Expected score reset to 100, got %d", item.FreshnessScore)
	}
	if item.WearCount != 0 {
		t.Errorf("Expected wear count reset to 0, got %d", item.WearCount)
	}
}

func TestRemoveFromLaundryRevertsToDerivedStatus(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	// Two wears at the default afterFewWears step leave the score at 50,
	// which derives WORN_WEARABLE.
	item := newTestItem(t, domain.WashAfterFewWears)
	for i := 0; i < 2; i++ {
		next, err := svc.ApplyWear(item, now)
		if err != nil {
			t.Fatalf("wear %d: unexpected error %v", i+1, err)
		}
		item = next
	}

	item, err := svc.AddToLaundry(item, now)
	if err != nil {
		t.Fatalf("add to laundry: %v", err)
	}

	item, err = svc.RemoveFromLaundry(item, now)
	if err != nil {
		t.Fatalf("remove from laundry: %v", err)
	}
	if item.Status != domain.StatusWornWearable {
		t.Errorf("Expected derived status %q, got %q", domain.StatusWornWearable, item.Status)
	}
	if item.FreshnessScore != 50 {
		t.Errorf("Expected score 50 preserved, got %d", item.FreshnessScore)
	}
}

func TestInvalidTransitions(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()
	item := newTestItem(t, domain.WashAfterFewWears)

	if _, err := svc.RemoveFromLaundry(item, now); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("RemoveFromLaundry from fresh: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.MarkWashed(item, now); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("MarkWashed from fresh: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.ReturnToRotation(item, now); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("ReturnToRotation from fresh: expected ErrInvalidTransition, got %v", err)
	}

	inLaundry, err := svc.AddToLaundry(item, now)
	if err != nil {
		t.Fatalf("add to laundry: %v", err)
	}
	if _, err := svc.AddToLaundry(inLaundry, now); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("AddToLaundry twice: expected ErrInvalidTransition, got %v", err)
	}
}

func TestNilItem(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	if _, err := svc.ApplyWear(nil, now); !errors.Is(err, ErrNilItem) {
		t.Errorf("Expected ErrNilItem, got %v", err)
	}
}
