// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"
)

// CalibratedFacilityLimit is the largest network the multiplier was calibrated
// against. Larger networks still compute but deserve a second look.
const CalibratedFacilityLimit = 1000

// ValidateContractedFacilities warns when a scenario pays for fewer
// facilities than it models, or for more than it operates.
func ValidateContractedFacilities(scenarioName string, contracted, facilities int) string {
	switch {
	case contracted <= 0 || facilities <= 0:
		return ""
	case contracted < facilities:
		return fmt.Sprintf("Scenario '%s' contracts %d facilities but models savings for %d - costs may be understated",
			scenarioName, contracted, facilities)
	case contracted > facilities:
		return fmt.Sprintf("Scenario '%s' contracts %d facilities but only %d generate savings",
			scenarioName, contracted, facilities)
	}
	return ""
}

// ValidateNetworkSize checks the facility count against the calibrated range
func ValidateNetworkSize(scenarioName string, facilities int) string {
	if facilities > CalibratedFacilityLimit {
		return fmt.Sprintf("Scenario '%s' models %d facilities, beyond the %d calibrated for the network multiplier",
			scenarioName, facilities, CalibratedFacilityLimit)
	}
	return ""
}

// ValidateRampShare flags a year-one ramp that makes payback meaningless
func ValidateRampShare(scenarioName string, ramp *float64) string {
	if ramp != nil && *ramp == 0 {
		return fmt.Sprintf("Scenario '%s' sets yearOneRampShare to 0 - payback will never be reached", scenarioName)
	}
	return ""
}

// ConfigValidator performs cross-scenario validation of a configuration
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

// ScenarioConfig is the subset of a configured scenario the validator checks.
type ScenarioConfig struct {
	Name                 string
	Active               bool
	HasPreset            bool
	Facilities           int
	ContractedFacilities *int
	YearOneRampShare     *float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	active := 0
	seen := make(map[string]int)
	for _, scenario := range cv.Scenarios {
		key := strings.ToLower(strings.TrimSpace(scenario.Name))
		seen[key]++
		if seen[key] == 2 {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}

		if !scenario.Active {
			continue
		}
		active++

		if !scenario.HasPreset && scenario.Facilities == 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has neither a preset nor operations - it will fail to compute", scenario.Name))
			continue
		}
		if w := ValidateNetworkSize(scenario.Name, scenario.Facilities); w != "" {
			warnings = append(warnings, w)
		}
		if scenario.ContractedFacilities != nil {
			if w := ValidateContractedFacilities(scenario.Name, *scenario.ContractedFacilities, scenario.Facilities); w != "" {
				warnings = append(warnings, w)
			}
		}
		if w := ValidateRampShare(scenario.Name, scenario.YearOneRampShare); w != "" {
			warnings = append(warnings, w)
		}
	}

	if len(cv.Scenarios) > 0 && active == 0 {
		warnings = append(warnings, "No scenarios are active - nothing will be projected")
	}

	return warnings
}
