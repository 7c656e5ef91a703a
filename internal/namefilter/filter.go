// Package namefilter provides glob-based include/exclude filtering of names
// and paths using doublestar patterns.
package namefilter

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds the include and exclude patterns for name filtering.
// An empty include list includes everything; exclusions apply after
// inclusions.
type Filter struct {
	include []string
	exclude []string
}

// New creates a new Filter with the given include and exclude patterns
func New(include, exclude []string) *Filter {
	return &Filter{
		include: include,
		exclude: exclude,
	}
}

// Match checks if a name passes the filter criteria
func (f *Filter) Match(name string) (bool, error) {
	// Check if it matches any include pattern
	included := len(f.include) == 0
	for _, pattern := range f.include {
		match, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, err
		}
		if match {
			included = true
			break
		}
	}

	if !included {
		return false, nil
	}

	// Check if it matches any exclude pattern
	for _, pattern := range f.exclude {
		match, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, err
		}
		if match {
			return false, nil
		}
	}

	return true, nil
}

// ValidPattern reports whether a single glob pattern is syntactically valid
func ValidPattern(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}

// Validate checks every pattern for syntax errors.
func (f *Filter) Validate() error {
	for _, pattern := range f.include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range f.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	return nil
}
