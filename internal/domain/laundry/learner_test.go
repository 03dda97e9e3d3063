package laundry

import (
	"math"
	"testing"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

func TestDismissRateUpdate(t *testing.T) {
	t.Parallel()
	rate := NewDismissRate(0.3)

	if rate.Rate != 0.5 {
		t.Fatalf("Expected neutral initial rate 0.5, got %v", rate.Rate)
	}

	rate.Update(domain.DecisionKeptWearing)
	if math.Abs(rate.Rate-0.65) > 1e-9 {
		t.Errorf("Expected rate 0.65 after one dismissal, got %v", rate.Rate)
	}

	rate.Update(domain.DecisionMovedToLaundry)
	if math.Abs(rate.Rate-0.455) > 1e-9 {
		t.Errorf("Expected rate 0.455 after acceptance, got %v", rate.Rate)
	}
}

func TestDismissRateStaysInUnitInterval(t *testing.T) {
	t.Parallel()
	rate := NewDismissRate(0.3)

	for i := 0; i < 100; i++ {
		rate.Update(domain.DecisionKeptWearing)
		if rate.Rate < 0 || rate.Rate > 1 {
			t.Fatalf("rate %v left [0,1] after %d dismissals", rate.Rate, i+1)
		}
	}
	if rate.Rate < 0.99 {
		t.Errorf("Expected rate to converge toward 1, got %v", rate.Rate)
	}

	for i := 0; i < 100; i++ {
		rate.Update(domain.DecisionMovedToLaundry)
		if rate.Rate < 0 || rate.Rate > 1 {
			t.Fatalf("rate %v left [0,1] after %d acceptances", rate.Rate, i+1)
		}
	}
	if rate.Rate > 0.01 {
		t.Errorf("Expected rate to converge toward 0, got %v", rate.Rate)
	}
}

func TestThresholdMultiplierBounds(t *testing.T) {
	t.Parallel()

	heavy := NewDismissRate(0.5)
	for i := 0; i < 50; i++ {
		heavy.Update(domain.DecisionKeptWearing)
	}
	if m := heavy.ThresholdMultiplier(0.5, 1.5); m != 0.5 {
		t.Errorf("Expected heavy dismisser clamped to 0.5, got %v", m)
	}

	eager := NewDismissRate(0.5)
	for i := 0; i < 50; i++ {
		eager.Update(domain.DecisionMovedToLaundry)
	}
	if m := eager.ThresholdMultiplier(0.5, 1.4); m != 1.4 {
		t.Errorf("Expected eager accepter clamped to 1.4, got %v", m)
	}
}

func TestThresholdMultiplierNeutralStart(t *testing.T) {
	t.Parallel()

	// A category with no history must behave exactly like an absent
	// learner entry: multiplier 1.0. The first decision moves the
	// multiplier by one alpha step instead of jumping to a clamp bound.
	rate := NewDismissRate(0.3)
	if m := rate.ThresholdMultiplier(0.5, 1.5); math.Abs(m-1.0) > 1e-9 {
		t.Fatalf("Expected neutral multiplier 1.0 with no history, got %v", m)
	}

	rate.Update(domain.DecisionMovedToLaundry)
	if m := rate.ThresholdMultiplier(0.5, 1.5); math.Abs(m-1.15) > 1e-9 {
		t.Errorf("Expected multiplier 1.15 after one acceptance, got %v", m)
	}

	dismisser := NewDismissRate(0.3)
	dismisser.Update(domain.DecisionKeptWearing)
	if m := dismisser.ThresholdMultiplier(0.5, 1.5); math.Abs(m-0.85) > 1e-9 {
		t.Errorf("Expected multiplier 0.85 after one dismissal, got %v", m)
	}
}

func TestThresholdMultiplierDirection(t *testing.T) {
	t.Parallel()

	// More dismissals must never increase the multiplier.
	rate := NewDismissRate(0.3)
	prev := rate.ThresholdMultiplier(0.5, 1.5)
	for i := 0; i < 10; i++ {
		rate.Update(domain.DecisionKeptWearing)
		m := rate.ThresholdMultiplier(0.5, 1.5)
		if m > prev {
			t.Fatalf("multiplier rose from %v to %v after a dismissal", prev, m)
		}
		prev = m
	}
}
