package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidCleanlinessStatus is returned when a cleanliness status is not valid.
	ErrInvalidCleanlinessStatus = errors.New("invalid cleanliness status")

	// ErrInvalidWashPreference is returned when a wash preference is not valid.
	ErrInvalidWashPreference = errors.New("invalid wash preference")

	// ErrInvalidTransition is returned when a cleanliness state transition is not
	// allowed from the item's current status.
	ErrInvalidTransition = errors.New("invalid cleanliness transition")

	// ErrInvalidRating is returned when a feedback rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidDecision is returned when a wash decision is not valid.
	ErrInvalidDecision = errors.New("invalid wash decision")
)
