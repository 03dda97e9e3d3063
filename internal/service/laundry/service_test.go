package laundry

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/domain/freshness"
	"github.com/closetpilot/wardrobe-api/internal/platform/hashenc"
	"github.com/closetpilot/wardrobe-api/internal/platform/memory"
	"github.com/closetpilot/wardrobe-api/internal/service/wardrobe"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fixture struct {
	laundry  LaundryService
	wardrobe wardrobe.WardrobeService
	items    *memory.ClothingItemStore
	owner    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	items := memory.NewClothingItemStore()
	entries := memory.NewLaundryEntryStore()
	decisions := memory.NewWashDecisionStore()
	freshnessService := freshness.NewDefaultService()

	wardrobeService := wardrobe.NewWardrobeService(items, entries, nil, freshnessService,
		hashenc.NewEncoder(16), 3, testLogger())
	laundryService := NewLaundryService(items, decisions, freshnessService,
		wardrobeService, nil, testLogger())

	return &fixture{
		laundry:  laundryService,
		wardrobe: wardrobeService,
		items:    items,
		owner:    uuid.New(),
	}
}

// addItem seeds an item directly at a given freshness state.
func (f *fixture) addItem(t *testing.T, category string, pref domain.WashPreference, score int, wears int) *domain.ClothingItem {
	t.Helper()
	item, err := domain.NewClothingItem(f.owner,
		domain.ItemAttributes{Category: category}, []float64{1}, pref)
	require.NoError(t, err)
	item.FreshnessScore = score
	item.WearCount = wears
	switch {
	case score <= 33:
		item.Status = domain.StatusNeedsWash
	case score <= 66:
		item.Status = domain.StatusWornWearable
	}
	require.NoError(t, f.items.Create(context.Background(), item))
	return item
}

func TestSuggestions_DirtiestFirst(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	dirty := f.addItem(t, "tops", domain.WashAfterFewWears, 10, 6)
	dirtier := f.addItem(t, "pants", domain.WashAfterFewWears, 5, 8)
	f.addItem(t, "shoes", domain.WashAfterFewWears, 90, 1)

	suggestions, err := f.laundry.Suggestions(context.Background(), f.owner)
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, dirtier.ID, suggestions[0].Item.ID)
	assert.Equal(t, dirty.ID, suggestions[1].Item.ID)
	assert.GreaterOrEqual(t, suggestions[0].Urgency, suggestions[1].Urgency)
}

func TestSuggestions_SkipsManualAndPipelineItems(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	manual := f.addItem(t, "jackets", domain.WashManual, 5, 9)
	inLaundry := f.addItem(t, "tops", domain.WashAfterFewWears, 5, 9)
	inLaundry.Status = domain.StatusInLaundry
	require.NoError(t, f.items.Update(context.Background(), inLaundry))

	suggestions, err := f.laundry.Suggestions(context.Background(), f.owner)
	require.NoError(t, err)

	for _, s := range suggestions {
		assert.NotEqual(t, manual.ID, s.Item.ID)
		assert.NotEqual(t, inLaundry.ID, s.Item.ID)
	}
}

func TestSuggestions_LearnedThresholdSuppresses(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	// Score 30 sits just under the base threshold of 33.
	borderline := f.addItem(t, "jeans", domain.WashAfterFewWears, 30, 4)

	suggestions, err := f.laundry.Suggestions(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, suggestions, 1, "borderline item is suggested before any dismissals")

	// The user keeps dismissing jeans suggestions; the learned multiplier
	// pulls the trigger below 30 and the suggestion disappears.
	other := f.addItem(t, "jeans", domain.WashAfterFewWears, 80, 1)
	for i := 0; i < 6; i++ {
		_, err := f.laundry.RecordDecision(ctx, f.owner, other.ID,
			domain.DecisionKeptWearing, "jeans")
		require.NoError(t, err)
	}

	suggestions, err = f.laundry.Suggestions(ctx, f.owner)
	require.NoError(t, err)
	for _, s := range suggestions {
		assert.NotEqual(t, borderline.ID, s.Item.ID,
			"repeated dismissals must raise the bar for jeans suggestions")
	}
}

func TestRecordDecision_MovedToLaundryDrivesTransition(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "tops", domain.WashAfterFewWears, 20, 5)

	record, err := f.laundry.RecordDecision(ctx, f.owner, item.ID,
		domain.DecisionMovedToLaundry, "")
	require.NoError(t, err)
	assert.Equal(t, "tops", record.ItemType, "item type defaults to the item's category")

	stored, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInLaundry, stored.Status)
}

func TestRecordDecision_KeptWearingLeavesItemAlone(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "tops", domain.WashAfterFewWears, 20, 5)

	_, err := f.laundry.RecordDecision(ctx, f.owner, item.ID,
		domain.DecisionKeptWearing, "")
	require.NoError(t, err)

	stored, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNeedsWash, stored.Status)
}

func TestRecordDecision_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "tops", domain.WashAfterFewWears, 20, 5)

	_, err := f.laundry.RecordDecision(ctx, f.owner, item.ID,
		domain.WashDecision("ignored"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidDecision)

	_, err = f.laundry.RecordDecision(ctx, uuid.New(), item.ID,
		domain.DecisionKeptWearing, "")
	assert.ErrorIs(t, err, ErrItemNotOwned)

	_, err = f.laundry.RecordDecision(ctx, f.owner, uuid.New(),
		domain.DecisionKeptWearing, "")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
