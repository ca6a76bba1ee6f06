package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Review.validate(); err != nil {
		return fmt.Errorf("review: %w", err)
	}

	return nil
}

func (r *ReviewConfig) validate() error {
	intervals, err := ParseIntervals(r.IntervalsRaw)
	if err != nil {
		return fmt.Errorf("intervals: %w", err)
	}
	r.Intervals = intervals

	if r.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be > 0 (got %v)", r.TickInterval)
	}

	return nil
}

// ParseIntervals parses a comma-separated string of day counts (e.g.
// "1,2,4,7,15,30") into the retention curve. The result must be non-empty,
// every value positive, and the sequence non-decreasing.
func ParseIntervals(raw string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")

	intervals := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		days, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid day count %q: %w", p, err)
		}
		if days <= 0 {
			return nil, fmt.Errorf("day count must be positive (got %d)", days)
		}
		if len(intervals) > 0 && days < intervals[len(intervals)-1] {
			return nil, fmt.Errorf("sequence must be non-decreasing (%d after %d)", days, intervals[len(intervals)-1])
		}
		intervals = append(intervals, days)
	}

	if len(intervals) == 0 {
		return nil, fmt.Errorf("at least one interval is required")
	}

	return intervals, nil
}
