package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewRecommendationResult(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	items := map[string][]RankedItem{
		"tops":  {{ItemID: uuid.New(), Similarity: 0.9}, {ItemID: uuid.New(), Similarity: 0.7}},
		"pants": {{ItemID: uuid.New(), Similarity: 0.8}},
	}

	result, err := NewRecommendationResult(userID,
		RecommendationContext{Occasion: "casual"}, items, "a light summer look")
	if err != nil {
		t.Fatalf("NewRecommendationResult failed: %v", err)
	}

	if result.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, result.UserID)
	}
	if result.TotalItems() != 3 {
		t.Errorf("expected 3 items, got %d", result.TotalItems())
	}
	if len(result.ItemIDs()) != 3 {
		t.Errorf("expected 3 item IDs, got %d", len(result.ItemIDs()))
	}
}

func TestNewRecommendationResult_RequiresUser(t *testing.T) {
	t.Parallel()

	_, err := NewRecommendationResult(uuid.Nil, RecommendationContext{}, nil, "")
	if !errors.Is(err, ErrRecommendationUserIDEmpty) {
		t.Errorf("expected ErrRecommendationUserIDEmpty, got %v", err)
	}
}

func TestRecommendationResult_EmptyNarrativeAllowed(t *testing.T) {
	t.Parallel()

	result, err := NewRecommendationResult(uuid.New(), RecommendationContext{},
		map[string][]RankedItem{"tops": {{ItemID: uuid.New(), Similarity: 1}}}, "")
	if err != nil {
		t.Fatalf("NewRecommendationResult failed: %v", err)
	}
	if result.Narrative != "" {
		t.Errorf("expected empty narrative, got %q", result.Narrative)
	}
}
