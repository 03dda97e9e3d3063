package api

import (
	"time"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	domainlaundry "github.com/closetpilot/wardrobe-api/internal/domain/laundry"
)

// Common request/response structures. The wire format uses camelCase keys;
// handlers translate to and from the domain types.

// ItemAttributesPayload mirrors domain.ItemAttributes on the wire.
type ItemAttributesPayload struct {
	Category  string   `json:"category"  validate:"required"`
	Colors    []string `json:"colors,omitempty"`
	Formality string   `json:"formality,omitempty"`
	Season    string   `json:"season,omitempty"`
	Material  string   `json:"material,omitempty"`
}

func (p ItemAttributesPayload) toDomain() domain.ItemAttributes {
	return domain.ItemAttributes{
		Category:  p.Category,
		Colors:    p.Colors,
		Formality: p.Formality,
		Season:    p.Season,
		Material:  p.Material,
	}
}

// ItemResponse is the wire representation of a clothing item. The embedding
// vector is internal and never serialized.
type ItemResponse struct {
	ID                string                `json:"id"`
	UserID            string                `json:"userId"`
	Attributes        ItemAttributesPayload `json:"attributes"`
	WearCount         int                   `json:"wearCount"`
	LastWornAt        *time.Time            `json:"lastWornAt,omitempty"`
	CleanlinessStatus string                `json:"cleanlinessStatus"`
	FreshnessScore    int                   `json:"freshnessScore"`
	WashPreference    string                `json:"washPreference"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

func itemToResponse(item *domain.ClothingItem) ItemResponse {
	resp := ItemResponse{
		ID:     item.ID.String(),
		UserID: item.OwnerID.String(),
		Attributes: ItemAttributesPayload{
			Category:  item.Attributes.Category,
			Colors:    item.Attributes.Colors,
			Formality: item.Attributes.Formality,
			Season:    item.Attributes.Season,
			Material:  item.Attributes.Material,
		},
		WearCount:         item.WearCount,
		CleanlinessStatus: string(item.Status),
		FreshnessScore:    item.FreshnessScore,
		WashPreference:    string(item.WashPreference),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
	if !item.LastWornAt.IsZero() {
		lastWorn := item.LastWornAt
		resp.LastWornAt = &lastWorn
	}
	return resp
}

func itemsToResponse(items []*domain.ClothingItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemToResponse(item))
	}
	return out
}

// RankedItemResponse is one scored entry inside a recommendation.
type RankedItemResponse struct {
	ItemID     string  `json:"itemId"`
	Similarity float64 `json:"similarity"`
}

// SuggestionResponse is one laundry suggestion.
type SuggestionResponse struct {
	Item       ItemResponse `json:"item"`
	Reason     string       `json:"reason"`
	Confidence float64      `json:"confidence"`
	Urgency    float64      `json:"urgency"`
}

func suggestionToResponse(s domainlaundry.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		Item:       itemToResponse(s.Item),
		Reason:     s.Reason,
		Confidence: s.Confidence,
		Urgency:    s.Urgency,
	}
}
