package config

import "testing"

func TestCanonicalOptimizerKind(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty defaults to ramp", input: "", expected: OptimizerKindBreakEvenRamp},
		{name: "facilities casing", input: "Min_Facilities", expected: OptimizerKindMinFacilities},
		{name: "facilities hyphenated", input: "min-facilities", expected: OptimizerKindMinFacilities},
		{name: "ramp shorthand", input: "RAMP", expected: OptimizerKindBreakEvenRamp},
		{name: "unknown lowered", input: "Custom", expected: "custom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := CanonicalOptimizerKind(tc.input)
			if actual != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, actual)
			}
		})
	}
}

func TestOptimizerConfigNormalizeDefaults(t *testing.T) {
	testCases := []struct {
		name          string
		kind          string
		tolerance     float64
		maxFacilities int
	}{
		{name: "facilities", kind: "min_facilities", tolerance: defaultToleranceDiscrete, maxFacilities: defaultMaxFacilities},
		{name: "ramp", kind: "", tolerance: defaultToleranceShare, maxFacilities: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &OptimizerConfig{Kind: tc.kind}
			cfg.Normalize()

			if cfg.Tolerance != tc.tolerance {
				t.Fatalf("expected tolerance %v, got %v", tc.tolerance, cfg.Tolerance)
			}
			if cfg.MaxFacilities != tc.maxFacilities {
				t.Fatalf("expected max facilities %d, got %d", tc.maxFacilities, cfg.MaxFacilities)
			}
			if cfg.MaxIterations != defaultMaxIterations {
				t.Fatalf("expected max iterations %d, got %d", defaultMaxIterations, cfg.MaxIterations)
			}
			if cfg.Name != cfg.Kind {
				t.Fatalf("expected name to default to kind %q, got %q", cfg.Kind, cfg.Name)
			}
		})
	}
}

func TestOptimizerConfigValidate(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       OptimizerConfig
		expectErr bool
	}{
		{name: "valid facilities", cfg: OptimizerConfig{Kind: "min_facilities", TargetMultiplier: 1.5}},
		{name: "valid ramp", cfg: OptimizerConfig{Kind: "break_even_ramp"}},
		{name: "multiplier below one", cfg: OptimizerConfig{Kind: "min_facilities", TargetMultiplier: 0.5}, expectErr: true},
		{name: "tiny network bound", cfg: OptimizerConfig{Kind: "min_facilities", TargetMultiplier: 1.5, MaxFacilities: 1}, expectErr: true},
		{name: "ramp tolerance too coarse", cfg: OptimizerConfig{Kind: "ramp", Tolerance: 2}, expectErr: true},
		{name: "unsupported kind", cfg: OptimizerConfig{Kind: "max_roi"}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			err := cfg.Validate()
			if tc.expectErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tc.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	var nilCfg *OptimizerConfig
	if err := nilCfg.Validate(); err == nil {
		t.Fatal("expected an error for a nil configuration")
	}
}

func floatPtr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}
