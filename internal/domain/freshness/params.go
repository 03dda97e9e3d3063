package freshness

import (
	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// Params defines all configurable parameters for the freshness state machine
type Params struct {
	// Score thresholds for deriving cleanliness status
	FreshBoundary      int // score above this is FRESH
	NeedsWashThreshold int // score at or below this is NEEDS_WASH

	// Per-wear score decay for each wash preference
	WearDecay map[domain.WashPreference]int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	FreshBoundary      int
	NeedsWashThreshold int

	// Decay amounts
	AfterEachWearDecay int
	AfterFewWearsDecay int
	ManualDecay        int
}

// NewDefaultParams creates a new Params instance with default values.
//
// The defaults satisfy the policy contracts: afterEachWear drops below the
// NEEDS_WASH threshold after exactly one wear (100 - 70 = 30 <= 33), and
// afterFewWears crosses it in fixed steps after a few wears. Manual items
// still decay for display but are excluded from automatic suggestions.
func NewDefaultParams() *Params {
	return &Params{
		FreshBoundary:      66,
		NeedsWashThreshold: 33,

		WearDecay: map[domain.WashPreference]int{
			domain.WashAfterEachWear: 70,
			domain.WashAfterFewWears: 25,
			domain.WashManual:        10,
		},
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.FreshBoundary > 0 {
		params.FreshBoundary = config.FreshBoundary
	}
	if config.NeedsWashThreshold > 0 {
		params.NeedsWashThreshold = config.NeedsWashThreshold
	}

	if config.AfterEachWearDecay > 0 {
		params.WearDecay[domain.WashAfterEachWear] = config.AfterEachWearDecay
	}
	if config.AfterFewWearsDecay > 0 {
		params.WearDecay[domain.WashAfterFewWears] = config.AfterFewWearsDecay
	}
	if config.ManualDecay > 0 {
		params.WearDecay[domain.WashManual] = config.ManualDecay
	}

	return params
}
