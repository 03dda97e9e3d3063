package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
// All freshness/learner/cache tunables live here rather than being
// hard-coded; the defaults are set in Load.
type Config struct {
	Server         ServerConfig         `mapstructure:"server"         validate:"required"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Weather        WeatherConfig        `mapstructure:"weather"        validate:"required"`
	Freshness      FreshnessConfig      `mapstructure:"freshness"      validate:"required"`
	Learner        LearnerConfig        `mapstructure:"learner"        validate:"required"`
	Recommendation RecommendationConfig `mapstructure:"recommendation" validate:"required"`
	LLM            LLMConfig            `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL runs the service on the in-memory stores.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// WeatherConfig contains the weather advisory cache and provider settings.
type WeatherConfig struct {
	// TTL is how long a cached advisory stays valid.
	TTL time.Duration `mapstructure:"ttl" validate:"required,gt=0"`

	// CoordinatePrecision is the number of decimal places coordinates
	// are rounded to when building cache keys.
	CoordinatePrecision int `mapstructure:"coordinate_precision" validate:"gte=0,lte=6"`

	// ProviderTimeout bounds the external weather fetch.
	ProviderTimeout time.Duration `mapstructure:"provider_timeout" validate:"required,gt=0"`

	// ProviderURL is the base URL of the external weather API.
	ProviderURL string `mapstructure:"provider_url" validate:"omitempty,url"`

	// SweepInterval enables a periodic expired-entry sweep when positive.
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"gte=0"`
}

// FreshnessConfig contains the state machine thresholds and decay steps.
type FreshnessConfig struct {
	FreshBoundary      int `mapstructure:"fresh_boundary"        validate:"required,gt=0,lt=100"`
	NeedsWashThreshold int `mapstructure:"needs_wash_threshold"  validate:"required,gt=0,lt=100"`
	AfterEachWearDecay int `mapstructure:"after_each_wear_decay" validate:"required,gt=0,lte=100"`
	AfterFewWearsDecay int `mapstructure:"after_few_wears_decay" validate:"required,gt=0,lte=100"`
	ManualDecay        int `mapstructure:"manual_decay"          validate:"required,gt=0,lte=100"`
}

// LearnerConfig contains the wear decision learner settings.
type LearnerConfig struct {
	Alpha         float64 `mapstructure:"alpha"          validate:"required,gt=0,lt=1"`
	MinMultiplier float64 `mapstructure:"min_multiplier" validate:"required,gt=0"`
	MaxMultiplier float64 `mapstructure:"max_multiplier" validate:"required,gtefield=MinMultiplier"`
}

// RecommendationConfig contains the composer and ranking settings.
type RecommendationConfig struct {
	PerCategoryCap      int           `mapstructure:"per_category_cap"    validate:"required,gt=0"`
	MaxTotalItems       int           `mapstructure:"max_total_items"     validate:"gte=0"`
	EssentialCategories []string      `mapstructure:"essential_categories"`
	NarrativeTimeout    time.Duration `mapstructure:"narrative_timeout"   validate:"required,gt=0"`
	TransitionRetries   int           `mapstructure:"transition_retries"  validate:"required,gte=1,lte=10"`
}

// LLMConfig contains the narrative generation settings. An empty API key
// disables narrative generation; recommendations then ship without text.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
}
