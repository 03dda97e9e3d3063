// Package match ranks candidate clothing items against a query embedding.
// Ranking is pure and side-effect free, safe to run in parallel across
// independent requests.
package match

import (
	"sort"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// Scored pairs a candidate item with the similarity it was ranked by.
type Scored struct {
	Item       *domain.ClothingItem
	Similarity float64
}

// Rank scores the candidates against the query vector and returns them
// grouped per category.
//
// Only items whose cleanliness status is wearable are considered; items in
// NEEDS_WASH or IN_LAUNDRY are never eligible. Zero-norm embeddings score
// 0 instead of dividing by zero. Ordering is similarity descending, ties
// broken by freshness score descending, then wear count ascending so
// fresher and less-worn items surface first.
//
// categoryBias adds a per-category adjustment to the similarity before
// ordering (the feedback aggregator's quality signal); nil means no bias.
func Rank(
	query []float64,
	candidates []*domain.ClothingItem,
	categoryBias map[string]float64,
	params *Params,
) map[string][]Scored {
	if params == nil {
		params = NewDefaultParams()
	}

	scored := make([]Scored, 0, len(candidates))
	for _, item := range candidates {
		if item == nil || !item.Status.Wearable() {
			continue
		}
		sim := CosineSimilarity(query, item.Embedding)
		if categoryBias != nil {
			sim += categoryBias[item.Attributes.Category]
		}
		scored = append(scored, Scored{Item: item, Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		if scored[i].Item.FreshnessScore != scored[j].Item.FreshnessScore {
			return scored[i].Item.FreshnessScore > scored[j].Item.FreshnessScore
		}
		return scored[i].Item.WearCount < scored[j].Item.WearCount
	})

	// Group per category, capping each category's contribution.
	byCategory := make(map[string][]Scored)
	capped := make([]Scored, 0, len(scored))
	for _, s := range scored {
		cat := s.Item.Attributes.Category
		if params.PerCategoryCap > 0 && len(byCategory[cat]) >= params.PerCategoryCap {
			continue
		}
		byCategory[cat] = append(byCategory[cat], s)
		capped = append(capped, s)
	}

	if params.MaxTotalItems <= 0 || len(capped) <= params.MaxTotalItems {
		return byCategory
	}

	// Global trim: keep the top MaxTotalItems, but reserve a slot for the
	// best item of every essential category that has any eligible
	// candidate, so pure top-K cannot produce an all-one-category result.
	keep := make(map[*domain.ClothingItem]bool, params.MaxTotalItems)
	kept := 0

	essential := make(map[string]bool, len(params.EssentialCategories))
	for _, cat := range params.EssentialCategories {
		essential[cat] = true
	}
	for cat, items := range byCategory {
		if essential[cat] && len(items) > 0 {
			keep[items[0].Item] = true
			kept++
		}
	}

	for _, s := range capped {
		if kept >= params.MaxTotalItems {
			break
		}
		if !keep[s.Item] {
			keep[s.Item] = true
			kept++
		}
	}

	trimmed := make(map[string][]Scored, len(byCategory))
	for cat, items := range byCategory {
		for _, s := range items {
			if keep[s.Item] {
				trimmed[cat] = append(trimmed[cat], s)
			}
		}
	}

	return trimmed
}
