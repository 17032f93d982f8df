/*
Package config loads engine settings from a YAML file.

PURPOSE:
  Seasonal multipliers, the distribution pattern, and the shipping-day
  toggle are operator-tunable. This package reads them from disk and falls
  back to the stock values when no file exists.

FALLBACK POLICY:
  The recovered-error-to-default pattern is scoped narrowly to the
  file-missing case: a present-but-malformed file is a hard error, never
  silently replaced by defaults.

EXAMPLE FILE:
  seasons:
    spring: 1.5
    summer: 1.4
    autumn: 1.3
    winter: 1.2
  pattern_name: 9-day
  adjust_shipping_days: true
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bloomgate/shipment-engine/forecast"
)

// Config holds the operator-tunable engine settings.
type Config struct {
	Seasons forecast.SeasonTable `yaml:"seasons"`

	// Pattern is an inline fractional curve. When empty, PatternName picks
	// a built-in ("9-day" or "14-day").
	Pattern     []float64 `yaml:"pattern"`
	PatternName string    `yaml:"pattern_name"`

	AdjustShippingDays bool `yaml:"adjust_shipping_days"`
}

// Default returns the stock configuration: 9-day curve, stock seasonal
// multipliers, shipping-day adjustment on.
func Default() Config {
	return Config{
		Seasons:            forecast.DefaultSeasons(),
		PatternName:        "9-day",
		AdjustShippingDays: true,
	}
}

// Load reads a config file. A missing file returns Default() with no error;
// any other failure (unreadable, malformed YAML, unknown pattern name) is
// returned as-is.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := cfg.DistributionPattern(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DistributionPattern resolves the configured pattern: inline fractions win,
// then the named built-in.
func (c Config) DistributionPattern() (forecast.Pattern, error) {
	if len(c.Pattern) > 0 {
		return forecast.Pattern(c.Pattern).Clone(), nil
	}
	switch c.PatternName {
	case "", "14-day":
		return forecast.DefaultPattern14.Clone(), nil
	case "9-day":
		return forecast.DefaultPattern9.Clone(), nil
	}
	return nil, fmt.Errorf("unknown pattern name %q (want 9-day or 14-day)", c.PatternName)
}

// PatternWarning checks the configured pattern against the strict tolerance
// band. Returns nil when the sum is acceptable.
func (c Config) PatternWarning() *forecast.PatternWarning {
	p, err := c.DistributionPattern()
	if err != nil {
		return nil
	}
	if sum := p.Sum(); sum <= 1-forecast.SumToleranceStrict || sum >= 1+forecast.SumToleranceStrict {
		return &forecast.PatternWarning{Sum: sum, Tolerance: forecast.SumToleranceStrict}
	}
	return nil
}
