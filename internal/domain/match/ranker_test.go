package match

import (
	"testing"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

func testItem(
	t *testing.T,
	category string,
	embedding []float64,
	status domain.CleanlinessStatus,
	score, wearCount int,
) *domain.ClothingItem {
	t.Helper()
	item, err := domain.NewClothingItem(
		uuid.New(),
		domain.ItemAttributes{Category: category},
		embedding,
		domain.WashAfterFewWears,
	)
	if err != nil {
		t.Fatalf("Expected no error creating item, got %v", err)
	}
	item.Status = status
	item.FreshnessScore = score
	item.WearCount = wearCount
	return item
}

func TestRankExcludesUnwearableItems(t *testing.T) {
	t.Parallel()
	query := []float64{1, 0}

	fresh := testItem(t, "tops", []float64{1, 0}, domain.StatusFresh, 100, 0)
	needsWash := testItem(t, "tops", []float64{1, 0}, domain.StatusNeedsWash, 10, 5)
	inLaundry := testItem(t, "tops", []float64{1, 0}, domain.StatusInLaundry, 10, 5)

	ranked := Rank(query, []*domain.ClothingItem{fresh, needsWash, inLaundry}, nil, nil)

	tops := ranked["tops"]
	if len(tops) != 1 {
		t.Fatalf("Expected 1 eligible item, got %d", len(tops))
	}
	if tops[0].Item.ID != fresh.ID {
		t.Errorf("Expected only the fresh item to rank")
	}
}

func TestRankIdenticalVectorRanksFirst(t *testing.T) {
	t.Parallel()
	// Query vector identical to item A's embedding and no other candidate
	// in A's category: A ranks first with similarity 1.0.
	query := []float64{0.6, 0.8}

	a := testItem(t, "tops", []float64{0.6, 0.8}, domain.StatusFresh, 100, 0)
	other := testItem(t, "bottoms", []float64{-0.8, 0.6}, domain.StatusFresh, 100, 0)

	ranked := Rank(query, []*domain.ClothingItem{other, a}, nil, nil)

	tops := ranked["tops"]
	if len(tops) != 1 {
		t.Fatalf("Expected 1 item in tops, got %d", len(tops))
	}
	if tops[0].Item.ID != a.ID {
		t.Errorf("Expected item A first in its category")
	}
	if diff := tops[0].Similarity - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected similarity 1.0, got %v", tops[0].Similarity)
	}
}

func TestRankTieBreaking(t *testing.T) {
	t.Parallel()
	query := []float64{1, 0}

	// All three have identical similarity; ordering must fall back to
	// freshness descending, then wear count ascending.
	worn := testItem(t, "tops", []float64{2, 0}, domain.StatusWornWearable, 50, 4)
	fresher := testItem(t, "tops", []float64{1, 0}, domain.StatusFresh, 90, 2)
	lessWorn := testItem(t, "tops", []float64{3, 0}, domain.StatusWornWearable, 50, 1)

	ranked := Rank(query, []*domain.ClothingItem{worn, fresher, lessWorn}, nil, nil)

	tops := ranked["tops"]
	if len(tops) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(tops))
	}
	if tops[0].Item.ID != fresher.ID {
		t.Errorf("Expected highest freshness first")
	}
	if tops[1].Item.ID != lessWorn.ID {
		t.Errorf("Expected lower wear count second")
	}
	if tops[2].Item.ID != worn.ID {
		t.Errorf("Expected most worn last")
	}
}

func TestRankPerCategoryCap(t *testing.T) {
	t.Parallel()
	query := []float64{1, 0}

	var items []*domain.ClothingItem
	for i := 0; i < 5; i++ {
		items = append(items, testItem(t, "tops", []float64{1, 0}, domain.StatusFresh, 100-i, i))
	}

	params := &Params{PerCategoryCap: 2}
	ranked := Rank(query, items, nil, params)

	if len(ranked["tops"]) != 2 {
		t.Errorf("Expected category capped at 2, got %d", len(ranked["tops"]))
	}
}

func TestRankEssentialCategoryFloor(t *testing.T) {
	t.Parallel()
	// Shoes score far below the tops, and the global limit is small
	// enough that pure top-K would return tops only. The essential
	// category floor must still surface the best shoe.
	query := []float64{1, 0}

	var items []*domain.ClothingItem
	for i := 0; i < 4; i++ {
		items = append(items, testItem(t, "tops", []float64{1, 0}, domain.StatusFresh, 100-i, i))
	}
	shoe := testItem(t, "shoes", []float64{-1, 0}, domain.StatusFresh, 100, 0)
	items = append(items, shoe)

	params := &Params{
		PerCategoryCap:      4,
		MaxTotalItems:       3,
		EssentialCategories: []string{"shoes"},
	}
	ranked := Rank(query, items, nil, params)

	shoes := ranked["shoes"]
	if len(shoes) != 1 || shoes[0].Item.ID != shoe.ID {
		t.Fatalf("Expected the best shoe to survive the global trim, got %v", shoes)
	}
}

func TestRankCategoryBias(t *testing.T) {
	t.Parallel()
	query := []float64{1, 0}

	top := testItem(t, "tops", []float64{1, 0.1}, domain.StatusFresh, 100, 0)
	bottom := testItem(t, "bottoms", []float64{1, 0.1}, domain.StatusFresh, 100, 0)

	bias := map[string]float64{"bottoms": -0.5}
	ranked := Rank(query, []*domain.ClothingItem{top, bottom}, bias, nil)

	if ranked["bottoms"][0].Similarity >= ranked["tops"][0].Similarity {
		t.Errorf("Expected negative bias to lower the bottoms score")
	}
}

func TestRankZeroNormEmbeddingScoresZero(t *testing.T) {
	t.Parallel()
	query := []float64{1, 0}

	blank := testItem(t, "tops", []float64{0, 0}, domain.StatusFresh, 100, 0)
	ranked := Rank(query, []*domain.ClothingItem{blank}, nil, nil)

	tops := ranked["tops"]
	if len(tops) != 1 {
		t.Fatalf("Expected zero-norm item to stay eligible, got %d items", len(tops))
	}
	if tops[0].Similarity != 0 {
		t.Errorf("Expected similarity 0 for zero-norm embedding, got %v", tops[0].Similarity)
	}
}
