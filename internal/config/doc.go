// Package config loads and validates application configuration.
package config
