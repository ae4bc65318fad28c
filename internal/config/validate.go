package config

import (
	"fmt"
	"net/url"
	"strconv"

	"rowpost/internal/spec"
)

// Validate checks a normalized config for structural errors.
func Validate(cfg *spec.Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d", cfg.Version)
	}
	if err := validateEndpoint(cfg.Endpoint); err != nil {
		return err
	}
	if cfg.Run.Input == "" {
		return fmt.Errorf("run.input is required")
	}
	return validateSlots(cfg.Slots)
}

// validateEndpoint checks the target URL.
func validateEndpoint(endpoint spec.EndpointConfig) error {
	if endpoint.URL == "" {
		return fmt.Errorf("endpoint.url is required")
	}
	parsed, err := url.Parse(endpoint.URL)
	if err != nil {
		return fmt.Errorf("endpoint.url is invalid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("endpoint.url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("endpoint.url is missing a host")
	}
	return nil
}

// validateSlots checks the backpressure configuration.
func validateSlots(slots spec.SlotsConfig) error {
	switch slots.Mode {
	case "disabled":
		return nil
	case "local":
		if slots.Capacity <= 0 {
			return fmt.Errorf("slots.capacity must be positive for local mode")
		}
		return nil
	case "tigerbeetle":
		if slots.Capacity <= 0 {
			return fmt.Errorf("slots.capacity must be positive for tigerbeetle mode")
		}
		if len(slots.TigerBeetle.Addresses) == 0 {
			return fmt.Errorf("slots.tigerbeetle.addresses is required")
		}
		if _, err := strconv.ParseUint(slots.TigerBeetle.ClusterID, 10, 32); err != nil {
			return fmt.Errorf("slots.tigerbeetle.cluster_id is invalid: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported slots mode %q", slots.Mode)
	}
}
