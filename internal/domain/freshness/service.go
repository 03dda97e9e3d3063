package freshness

import (
	"errors"
	"fmt"
	"time"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// Common errors
var (
	ErrNilItem = errors.New("clothing item cannot be nil")
)

// Service defines the interface for freshness state machine operations.
// All operations return new ClothingItem instances rather than mutating
// their inputs; callers persist the result under optimistic concurrency.
type Service interface {
	// ApplyWear records one worn event: wear count up, score decayed,
	// status re-derived. Not allowed while the item is in the laundry
	// pipeline.
	ApplyWear(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error)

	// AddToLaundry forces the item into IN_LAUNDRY regardless of score.
	AddToLaundry(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error)

	// RemoveFromLaundry takes an unwashed item out of the laundry bag,
	// reverting to the status derived from its current score.
	RemoveFromLaundry(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error)

	// MarkWashed moves an in-laundry item to WASHED.
	MarkWashed(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error)

	// ReturnToRotation brings a washed item back at READY_TO_WEAR with a
	// full score and zero wears.
	ReturnToRotation(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error)

	// DeriveStatus exposes the score-to-status mapping used by the
	// transitions, for callers that need the threshold without applying
	// a transition (laundry urgency, display).
	DeriveStatus(score int) domain.CleanlinessStatus

	// NeedsWashThreshold returns the configured score threshold at or
	// below which an item is considered to need a wash.
	NeedsWashThreshold() int
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new freshness service with default parameters
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new freshness service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// ApplyWear implements the Service interface for worn events
func (s *defaultService) ApplyWear(
	item *domain.ClothingItem,
	now time.Time,
) (*domain.ClothingItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	// Wearing something mid-wash makes no sense; everything else,
	// including NEEDS_WASH (the user kept wearing it), is allowed.
	if item.Status == domain.StatusInLaundry || item.Status == domain.StatusWashed {
		return nil, fmt.Errorf("%w: cannot wear item in status %q",
			domain.ErrInvalidTransition, item.Status)
	}

	return applyWear(item, now, s.params), nil
}

// AddToLaundry implements the Service interface for add-to-laundry
func (s *defaultService) AddToLaundry(
	item *domain.ClothingItem,
	now time.Time,
) (*domain.ClothingItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if item.Status == domain.StatusInLaundry {
		return nil, fmt.Errorf("%w: item is already in laundry", domain.ErrInvalidTransition)
	}

	return addToLaundry(item, now), nil
}

// RemoveFromLaundry implements the Service interface for remove-without-wash
func (s *defaultService) RemoveFromLaundry(
	item *domain.ClothingItem,
	now time.Time,
) (*domain.ClothingItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if item.Status != domain.StatusInLaundry {
		return nil, fmt.Errorf("%w: cannot remove item in status %q from laundry",
			domain.ErrInvalidTransition, item.Status)
	}

	return removeFromLaundry(item, now, s.params), nil
}

// MarkWashed implements the Service interface for mark-washed
func (s *defaultService) MarkWashed(
	item *domain.ClothingItem,
	now time.Time,
) (*domain.ClothingItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if item.Status != domain.StatusInLaundry {
		return nil, fmt.Errorf("%w: cannot mark item in status %q as washed",
			domain.ErrInvalidTransition, item.Status)
	}

	return markWashed(item, now), nil
}

// ReturnToRotation implements the Service interface for return/ready
func (s *defaultService) ReturnToRotation(
	item *domain.ClothingItem,
	now time.Time,
) (*domain.ClothingItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if item.Status != domain.StatusWashed {
		return nil, fmt.Errorf("%w: cannot return item in status %q to rotation",
			domain.ErrInvalidTransition, item.Status)
	}

	return returnToRotation(item, now), nil
}

// DeriveStatus implements the Service interface
func (s *defaultService) DeriveStatus(score int) domain.CleanlinessStatus {
	return deriveStatus(score, s.params)
}

// NeedsWashThreshold implements the Service interface
func (s *defaultService) NeedsWashThreshold() int {
	return s.params.NeedsWashThreshold
}
