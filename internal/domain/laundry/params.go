package laundry

// Params defines all configurable parameters for laundry suggestion
// generation and the wear decision learner.
type Params struct {
	// Alpha is the EWMA decay constant for the dismiss-rate learner.
	Alpha float64

	// MinMultiplier and MaxMultiplier bound the learned threshold
	// multiplier.
	MinMultiplier float64
	MaxMultiplier float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	Alpha         float64
	MinMultiplier float64
	MaxMultiplier float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Alpha:         0.3,
		MinMultiplier: 0.5,
		MaxMultiplier: 1.5,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.Alpha > 0 {
		params.Alpha = config.Alpha
	}
	if config.MinMultiplier > 0 {
		params.MinMultiplier = config.MinMultiplier
	}
	if config.MaxMultiplier > 0 {
		params.MaxMultiplier = config.MaxMultiplier
	}

	return params
}
