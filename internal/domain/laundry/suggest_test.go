package laundry

import (
	"testing"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

func suggestItem(
	t *testing.T,
	category string,
	pref domain.WashPreference,
	status domain.CleanlinessStatus,
	score, wearCount int,
) *domain.ClothingItem {
	t.Helper()
	item, err := domain.NewClothingItem(
		uuid.New(),
		domain.ItemAttributes{Category: category},
		nil,
		pref,
	)
	if err != nil {
		t.Fatalf("Expected no error creating item, got %v", err)
	}
	item.Status = status
	item.FreshnessScore = score
	item.WearCount = wearCount
	return item
}

func TestComputeSuggestionsBasic(t *testing.T) {
	t.Parallel()
	dirty := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusNeedsWash, 10, 4)
	clean := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusFresh, 90, 1)

	got := ComputeSuggestions(
		[]*domain.ClothingItem{clean, dirty}, 33, nil, nil)

	if len(got) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(got))
	}
	if got[0].Item.ID != dirty.ID {
		t.Errorf("Expected the dirty item to be suggested")
	}
	if got[0].Urgency < 0 {
		t.Errorf("Expected non-negative urgency, got %v", got[0].Urgency)
	}
	if got[0].Confidence < 0 || got[0].Confidence > 1 {
		t.Errorf("Expected confidence in [0,1], got %v", got[0].Confidence)
	}
}

func TestComputeSuggestionsSkipsManualAndLaundry(t *testing.T) {
	t.Parallel()
	manual := suggestItem(t, "tops", domain.WashManual, domain.StatusNeedsWash, 0, 9)
	inLaundry := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusInLaundry, 0, 9)
	washed := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusWashed, 0, 9)

	got := ComputeSuggestions(
		[]*domain.ClothingItem{manual, inLaundry, washed, nil}, 33, nil, nil)

	if len(got) != 0 {
		t.Errorf("Expected no suggestions, got %d", len(got))
	}
}

func TestComputeSuggestionsOrdering(t *testing.T) {
	t.Parallel()
	a := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusNeedsWash, 20, 2)
	b := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusNeedsWash, 5, 3)
	c := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusNeedsWash, 20, 7)

	got := ComputeSuggestions([]*domain.ClothingItem{a, b, c}, 33, nil, nil)

	if len(got) != 3 {
		t.Fatalf("Expected 3 suggestions, got %d", len(got))
	}
	// Lowest score first; equal scores break ties by wear count descending.
	if got[0].Item.ID != b.ID || got[1].Item.ID != c.ID || got[2].Item.ID != a.ID {
		t.Errorf("Unexpected ordering: %v, %v, %v",
			got[0].Item.FreshnessScore, got[1].Item.FreshnessScore, got[2].Item.FreshnessScore)
	}
}

func TestComputeSuggestionsLearnedThreshold(t *testing.T) {
	t.Parallel()
	// Score 30 sits just below the base threshold 33. A heavy dismisser's
	// multiplier halves the trigger to 16.5, so the suggestion disappears.
	item := suggestItem(t, "tops", domain.WashAfterFewWears, domain.StatusNeedsWash, 30, 3)

	unadjusted := ComputeSuggestions([]*domain.ClothingItem{item}, 33, nil, nil)
	if len(unadjusted) != 1 {
		t.Fatalf("Expected 1 suggestion without learner state, got %d", len(unadjusted))
	}

	heavy := NewDismissRate(0.5)
	for i := 0; i < 20; i++ {
		heavy.Update(domain.DecisionKeptWearing)
	}
	rates := map[string]*DismissRate{"tops": heavy}

	adjusted := ComputeSuggestions([]*domain.ClothingItem{item}, 33, rates, nil)
	if len(adjusted) != 0 {
		t.Errorf("Expected suggestion suppressed for heavy dismisser, got %d", len(adjusted))
	}
}
