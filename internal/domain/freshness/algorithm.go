package freshness

import (
	"time"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// wearDecay returns how much a single wear lowers the freshness score for
// the given wash preference. Unknown preferences fall back to the
// afterFewWears step so a malformed item still degrades instead of staying
// fresh forever.
func wearDecay(pref domain.WashPreference, params *Params) int {
	if decay, ok := params.WearDecay[pref]; ok {
		return decay
	}
	return params.WearDecay[domain.WashAfterFewWears]
}

// deriveStatus maps a freshness score onto a wearable cleanliness status.
//
//   - score above FreshBoundary: FRESH
//   - score at or below NeedsWashThreshold: NEEDS_WASH
//   - anything between: WORN_WEARABLE
//
// Forced laundry-pipeline states (IN_LAUNDRY, WASHED, READY_TO_WEAR) are
// never derived from the score; they are set explicitly by transitions.
func deriveStatus(score int, params *Params) domain.CleanlinessStatus {
	switch {
	case score > params.FreshBoundary:
		return domain.StatusFresh
	case score <= params.NeedsWashThreshold:
		return domain.StatusNeedsWash
	default:
		return domain.StatusWornWearable
	}
}

// clampScore keeps a freshness score inside [MinFreshnessScore, MaxFreshnessScore].
func clampScore(score int) int {
	if score < domain.MinFreshnessScore {
		return domain.MinFreshnessScore
	}
	if score > domain.MaxFreshnessScore {
		return domain.MaxFreshnessScore
	}
	return score
}

// copyItem clones an item so transitions can follow the immutable update
// pattern: callers always receive a new instance, never a mutated input.
func copyItem(item *domain.ClothingItem) *domain.ClothingItem {
	clone := *item
	if item.Embedding != nil {
		clone.Embedding = make([]float64, len(item.Embedding))
		copy(clone.Embedding, item.Embedding)
	}
	if item.Attributes.Colors != nil {
		clone.Attributes.Colors = make([]string, len(item.Attributes.Colors))
		copy(clone.Attributes.Colors, item.Attributes.Colors)
	}
	return &clone
}

// applyWear computes the item state after one worn event: the wear count
// goes up, the freshness score decays by the preference-specific step, and
// the status is re-derived from the new score.
func applyWear(item *domain.ClothingItem, now time.Time, params *Params) *domain.ClothingItem {
	next := copyItem(item)

	next.WearCount++
	next.FreshnessScore = clampScore(item.FreshnessScore - wearDecay(item.WashPreference, params))
	next.Status = deriveStatus(next.FreshnessScore, params)
	next.LastWornAt = now
	next.UpdatedAt = now

	return next
}

// addToLaundry forces the item into IN_LAUNDRY regardless of its current
// score. The score is kept so removing the item without washing can revert
// to the derived status.
func addToLaundry(item *domain.ClothingItem, now time.Time) *domain.ClothingItem {
	next := copyItem(item)
	next.Status = domain.StatusInLaundry
	next.UpdatedAt = now
	return next
}

// removeFromLaundry reverts an unwashed item to the status derived from
// its current score, as if it had never entered the laundry bag.
func removeFromLaundry(item *domain.ClothingItem, now time.Time, params *Params) *domain.ClothingItem {
	next := copyItem(item)
	next.Status = deriveStatus(item.FreshnessScore, params)
	next.UpdatedAt = now
	return next
}

// markWashed moves an in-laundry item to WASHED.
func markWashed(item *domain.ClothingItem, now time.Time) *domain.ClothingItem {
	next := copyItem(item)
	next.Status = domain.StatusWashed
	next.UpdatedAt = now
	return next
}

// returnToRotation closes the laundry cycle: the item comes back at
// READY_TO_WEAR with a full freshness score and a reset wear count.
// READY_TO_WEAR is wearable and behaves as FRESH; the next worn event
// derives the status from the score again.
func returnToRotation(item *domain.ClothingItem, now time.Time) *domain.ClothingItem {
	next := copyItem(item)
	next.Status = domain.StatusReadyToWear
	next.FreshnessScore = domain.MaxFreshnessScore
	next.WearCount = 0
	next.UpdatedAt = now
	return next
}
