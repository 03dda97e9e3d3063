// Package laundry computes laundry suggestions and adapts their
// sensitivity from past user decisions.
package laundry

import (
	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// DismissRate is the exponentially-weighted rate at which a user dismisses
// laundry suggestions for one clothing category. The state is explicit:
// {Rate, Alpha} per (user, category), updated from the append-only
// WashDecisionRecord log.
type DismissRate struct {
	// Rate is the current dismiss rate, in [0, 1]. A new pair starts at
	// 0.5, the neutral point where the threshold multiplier is 1.0, so a
	// category's first decision nudges the trigger instead of snapping it
	// to a clamp bound.
	Rate float64

	// Alpha is the EWMA decay constant: how much weight the latest
	// decision carries.
	Alpha float64
}

// NewDismissRate creates learner state for a (user, category) pair.
func NewDismissRate(alpha float64) *DismissRate {
	return &DismissRate{Rate: 0.5, Alpha: alpha}
}

// Update folds one wash decision into the rate:
// r = alpha*indicator(kept_wearing) + (1-alpha)*r_prev.
func (d *DismissRate) Update(decision domain.WashDecision) {
	indicator := 0.0
	if decision == domain.DecisionKeptWearing {
		indicator = 1.0
	}
	d.Rate = d.Alpha*indicator + (1-d.Alpha)*d.Rate
}

// ThresholdMultiplier converts the dismiss rate into a multiplier on the
// NEEDS_WASH trigger score, clamped to [min, max] to avoid runaway
// suppression or over-suggestion.
//
// A high dismiss rate shrinks the multiplier, so the score must fall
// further before the category is suggested again; a low dismiss rate
// grows it, suggesting earlier.
func (d *DismissRate) ThresholdMultiplier(min, max float64) float64 {
	m := 1.5 - d.Rate
	if m < min {
		m = min
	}
	if m > max {
		m = max
	}
	return m
}
