package configprocessor

import (
	"testing"
)

func TestNewProcessor(t *testing.T) {
	processor := NewProcessor()
	if processor == nil {
		t.Error("NewProcessor() returned nil")
	}
}

func TestProcessor_ValidateConfiguration(t *testing.T) {
	processor := NewProcessor()
	contracted := 4

	tests := []struct {
		name             string
		outputFormat     string
		scenarios        []ScenarioInfo
		expectedWarnings int
	}{
		{
			name:         "Valid configuration",
			outputFormat: "pretty",
			scenarios: []ScenarioInfo{
				{Name: "Pilot", Active: true, Preset: "pilot_1", Facilities: 1},
				{Name: "Custom", Active: true, Facilities: 12},
			},
			expectedWarnings: 0,
		},
		{
			name:         "Default output format",
			outputFormat: "",
			scenarios: []ScenarioInfo{
				{Name: "Pilot", Active: true, Preset: "pilot_1", Facilities: 1},
			},
			expectedWarnings: 0,
		},
		{
			name:         "Unsupported output format",
			outputFormat: "xml",
			scenarios: []ScenarioInfo{
				{Name: "Pilot", Active: true, Preset: "pilot_1", Facilities: 1},
			},
			expectedWarnings: 1,
		},
		{
			name:         "Scenario warnings pass through",
			outputFormat: "json",
			scenarios: []ScenarioInfo{
				{Name: "Regional", Active: true, Facilities: 10, ContractedFacilities: &contracted},
			},
			expectedWarnings: 1,
		},
		{
			name:             "No scenarios",
			outputFormat:     "csv",
			expectedWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := processor.ValidateConfiguration(tt.outputFormat, tt.scenarios)

			if len(warnings) != tt.expectedWarnings {
				t.Errorf("ValidateConfiguration() returned %d warnings, expected %d: %v",
					len(warnings), tt.expectedWarnings, warnings)
			}
		})
	}
}

func TestProcessor_ValidateConfigurationReturnsNilWhenClean(t *testing.T) {
	warnings := NewProcessor().ValidateConfiguration("pretty", []ScenarioInfo{{Name: "A", Active: true, Facilities: 3}})
	if warnings != nil {
		t.Errorf("expected nil warnings, got %v", warnings)
	}
}
