package laundry

import (
	"fmt"
	"sort"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// Suggestion proposes moving one item to the laundry bag.
type Suggestion struct {
	Item       *domain.ClothingItem `json:"item"`
	Reason     string               `json:"reason"`
	Confidence float64              `json:"confidence"`
	Urgency    float64              `json:"urgency"`
}

// ComputeSuggestions evaluates a user's items against the learned,
// category-adjusted NEEDS_WASH trigger and returns the ones due for
// laundry.
//
// Items currently in the laundry pipeline and items with a manual wash
// preference are never suggested. For each remaining item the urgency is
// the learned-threshold-adjusted distance of the freshness score below
// its trigger point; only items with urgency >= 0 are emitted. The result
// is sorted by freshness score ascending (dirtiest first), ties broken by
// wear count descending.
//
// rates holds the per-category learner state; a category without state
// uses the unadjusted threshold.
func ComputeSuggestions(
	items []*domain.ClothingItem,
	baseThreshold int,
	rates map[string]*DismissRate,
	params *Params,
) []Suggestion {
	if params == nil {
		params = NewDefaultParams()
	}

	var suggestions []Suggestion
	for _, item := range items {
		if item == nil {
			continue
		}
		// IN_LAUNDRY and WASHED items are already being handled,
		// READY_TO_WEAR just came back clean; manual items opted out
		// of automatic suggestions.
		if item.Status == domain.StatusInLaundry || item.Status == domain.StatusWashed ||
			item.Status == domain.StatusReadyToWear {
			continue
		}
		if item.WashPreference == domain.WashManual {
			continue
		}

		trigger := float64(baseThreshold)
		if rate, ok := rates[item.Attributes.Category]; ok && rate != nil {
			trigger *= rate.ThresholdMultiplier(params.MinMultiplier, params.MaxMultiplier)
		}

		urgency := trigger - float64(item.FreshnessScore)
		if urgency < 0 {
			continue
		}

		confidence := urgency / trigger
		if trigger <= 0 || confidence > 1 {
			confidence = 1
		}

		suggestions = append(suggestions, Suggestion{
			Item: item,
			Reason: fmt.Sprintf("worn %d times, freshness %d of 100",
				item.WearCount, item.FreshnessScore),
			Confidence: confidence,
			Urgency:    urgency,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Item.FreshnessScore != suggestions[j].Item.FreshnessScore {
			return suggestions[i].Item.FreshnessScore < suggestions[j].Item.FreshnessScore
		}
		return suggestions[i].Item.WearCount > suggestions[j].Item.WearCount
	})

	return suggestions
}
