package config

import (
	"fmt"
	"strings"
)

const (
	OptimizerKindMinFacilities = "min_facilities"
	OptimizerKindBreakEvenRamp = "break_even_ramp"

	defaultToleranceShare    = 0.0001
	defaultToleranceDiscrete = 1
	defaultMaxIterations     = 50
	defaultMaxFacilities     = 5000
)

// OptimizerConfig defines a single break-even search directive.
type OptimizerConfig struct {
	Name             string  `yaml:"name,omitempty" mapstructure:"name"`
	Kind             string  `yaml:"kind,omitempty" mapstructure:"kind"`
	TargetMultiplier float64 `yaml:"targetMultiplier,omitempty" mapstructure:"targetMultiplier"`
	MaxFacilities    int     `yaml:"maxFacilities,omitempty" mapstructure:"maxFacilities"`
	Tolerance        float64 `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations    int     `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerKind returns the canonical identifier for an optimizer kind.
func CanonicalOptimizerKind(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerKindBreakEvenRamp
	}
	switch strings.ToLower(strings.ReplaceAll(trimmed, "-", "_")) {
	case "min_facilities", "minfacilities", "minimum_facilities":
		return OptimizerKindMinFacilities
	case "break_even_ramp", "breakevenramp", "ramp":
		return OptimizerKindBreakEvenRamp
	default:
		return strings.ToLower(trimmed)
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Kind = CanonicalOptimizerKind(o.Kind)
	o.Name = strings.TrimSpace(o.Name)
	if o.Name == "" {
		o.Name = o.Kind
	}

	switch o.Kind {
	case OptimizerKindMinFacilities:
		if o.Tolerance <= 0 {
			o.Tolerance = defaultToleranceDiscrete
		}
		if o.MaxFacilities <= 0 {
			o.MaxFacilities = defaultMaxFacilities
		}
	default:
		if o.Tolerance <= 0 {
			o.Tolerance = defaultToleranceShare
		}
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	switch o.Kind {
	case OptimizerKindMinFacilities:
		if o.TargetMultiplier < 1 {
			return fmt.Errorf("optimizer target multiplier %.4f must be at least 1", o.TargetMultiplier)
		}
		if o.MaxFacilities < 2 {
			return fmt.Errorf("optimizer maximum facilities %d must be at least 2", o.MaxFacilities)
		}
	case OptimizerKindBreakEvenRamp:
		if o.Tolerance >= 1 {
			return fmt.Errorf("optimizer ramp tolerance %.4f must be below 1", o.Tolerance)
		}
	default:
		return fmt.Errorf("optimizer kind %q is not supported", o.Kind)
	}

	return nil
}
