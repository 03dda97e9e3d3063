package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config file. Environment variables (prefix WARDROBE_, nested keys joined
// with underscores, e.g. WARDROBE_SERVER_PORT) take precedence over values
// from the config file. Returns a populated Config or an error if loading
// or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults carry it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("WARDROBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value for every tunable: decay
// constants, thresholds, TTL, coordinate precision.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("weather.ttl", "30m")
	v.SetDefault("weather.coordinate_precision", 2)
	v.SetDefault("weather.provider_timeout", "5s")
	v.SetDefault("weather.provider_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("weather.sweep_interval", "0")

	v.SetDefault("freshness.fresh_boundary", 66)
	v.SetDefault("freshness.needs_wash_threshold", 33)
	v.SetDefault("freshness.after_each_wear_decay", 70)
	v.SetDefault("freshness.after_few_wears_decay", 25)
	v.SetDefault("freshness.manual_decay", 10)

	v.SetDefault("learner.alpha", 0.3)
	v.SetDefault("learner.min_multiplier", 0.5)
	v.SetDefault("learner.max_multiplier", 1.5)

	v.SetDefault("recommendation.per_category_cap", 3)
	v.SetDefault("recommendation.max_total_items", 12)
	v.SetDefault("recommendation.essential_categories", []string{"tops", "bottoms", "shoes"})
	v.SetDefault("recommendation.narrative_timeout", "10s")
	v.SetDefault("recommendation.transition_retries", 3)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
}
