package match

// Params defines all configurable parameters for candidate ranking.
type Params struct {
	// PerCategoryCap limits how many items each category may contribute.
	PerCategoryCap int

	// MaxTotalItems limits the overall result size. Zero means unlimited.
	MaxTotalItems int

	// EssentialCategories always contribute their best eligible item,
	// even when pure top-K selection would crowd them out.
	EssentialCategories []string
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		PerCategoryCap:      3,
		MaxTotalItems:       12,
		EssentialCategories: []string{"tops", "bottoms", "shoes"},
	}
}
