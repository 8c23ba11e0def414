// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"github.com/iwvelando/yard-economics/pkg/validation"
)

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name                 string
	Active               bool
	Preset               string
	Facilities           int
	ContractedFacilities *int
	YearOneRampShare     *float64
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration validates the configuration and returns warnings.
// An empty output format is accepted; callers apply the default.
func (p *Processor) ValidateConfiguration(outputFormat string, scenarios []ScenarioInfo) []string {
	var warnings []string

	if outputFormat != "" {
		if err := validation.ValidateOutputFormat(outputFormat); err != nil {
			warnings = append(warnings, "Output "+err.Error())
		}
	}

	validator := validation.ConfigValidator{}
	for _, scenario := range scenarios {
		validator.Scenarios = append(validator.Scenarios, validation.ScenarioConfig{
			Name:                 scenario.Name,
			Active:               scenario.Active,
			HasPreset:            scenario.Preset != "",
			Facilities:           scenario.Facilities,
			ContractedFacilities: scenario.ContractedFacilities,
			YearOneRampShare:     scenario.YearOneRampShare,
		})
	}
	warnings = append(warnings, validator.ValidateAll()...)

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
