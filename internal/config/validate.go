package config

import (
	"fmt"

	"github.com/malund/ociwho/internal/namefilter"
)

// Validate validates the configuration
func Validate(cfg *Config) error {
	// Version check
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (only version 1 is supported)", cfg.Version)
	}

	// Validate output format
	if cfg.Output != nil && cfg.Output.Format != "" {
		if !ValidFormat(cfg.Output.Format) {
			return fmt.Errorf("invalid output format: %s (must be 'table', 'csv', or 'json')", cfg.Output.Format)
		}
	}

	// Validate output color
	if cfg.Output != nil && cfg.Output.Color != "" {
		if !ValidColor(cfg.Output.Color) {
			return fmt.Errorf("invalid color mode: %s (must be 'auto', 'always', or 'never')", cfg.Output.Color)
		}
	}

	// Validate scan glob patterns
	if cfg.Scan != nil {
		if err := validatePatterns("include_compartments", cfg.Scan.IncludeCompartments); err != nil {
			return err
		}
		if err := validatePatterns("exclude_compartments", cfg.Scan.ExcludeCompartments); err != nil {
			return err
		}
		if err := validatePatterns("domains", cfg.Scan.Domains); err != nil {
			return err
		}
	}

	return nil
}

// ValidFormat checks if an output format name is valid
func ValidFormat(format string) bool {
	switch format {
	case "table", "csv", "json":
		return true
	}
	return false
}

// ValidColor checks if a color mode is valid
func ValidColor(color string) bool {
	switch color {
	case "auto", "always", "never":
		return true
	}
	return false
}

func validatePatterns(attr string, patterns []string) error {
	for _, p := range patterns {
		if !namefilter.ValidPattern(p) {
			return fmt.Errorf("invalid glob pattern in %s: %s", attr, p)
		}
	}
	return nil
}
