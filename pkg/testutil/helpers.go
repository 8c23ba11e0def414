// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/yard-economics/internal/projection"
	"github.com/iwvelando/yard-economics/pkg/economics"
	"github.com/iwvelando/yard-economics/pkg/mathutil"
)

// FindProjection finds a projection by name in the results slice.
// Returns a pointer to the projection if found, nil otherwise.
func FindProjection(results []projection.Projection, name string) *projection.Projection {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// PresetInput builds the engine input for a preset, failing the test on error.
func PresetInput(tb testing.TB, scenarioID, modeID string) economics.RoiV2Input {
	tb.Helper()
	in, err := economics.GetRoiV2InputsForPreset(scenarioID, modeID)
	if err != nil {
		tb.Fatalf("GetRoiV2InputsForPreset(%s, %s) error = %v", scenarioID, modeID, err)
	}
	return in
}

// PresetProjection runs the engine on a preset and wraps it as a named projection.
func PresetProjection(tb testing.TB, name, scenarioID, modeID string) projection.Projection {
	tb.Helper()
	in := PresetInput(tb, scenarioID, modeID)
	r, err := economics.CalcRoiV2(in)
	if err != nil {
		tb.Fatalf("CalcRoiV2(%s, %s) error = %v", scenarioID, modeID, err)
	}
	return projection.Projection{Name: name, Input: in, Result: r, Warnings: economics.CheckCredibility(in, r)}
}

// AssertClose fails when got and want differ by more than relTol of the larger magnitude.
func AssertClose(tb testing.TB, label string, got, want, relTol float64) {
	tb.Helper()
	if !mathutil.WithinRelativeTolerance(got, want, relTol) {
		tb.Errorf("%s = %v, expected %v (relative tolerance %v)", label, got, want, relTol)
	}
}
