// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning each configured
// scenario into engine input.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/yard-economics/pkg/configprocessor"
	"github.com/iwvelando/yard-economics/pkg/economics"
	"github.com/iwvelando/yard-economics/pkg/network"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for yard-economics.
type Configuration struct {
	Logging     LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Concurrency int           `yaml:"concurrency,omitempty" mapstructure:"concurrency"`
	Scenarios   []Scenario    `yaml:"scenarios" mapstructure:"scenarios"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// Scenario is one projection to evaluate. Operations may be given in full
// or layered over a preset; any non-zero operation value wins over the preset.
type Scenario struct {
	Name                 string            `yaml:"name" mapstructure:"name"`
	Active               bool              `yaml:"active" mapstructure:"active"`
	Preset               *PresetRef        `yaml:"preset,omitempty" mapstructure:"preset"`
	Operations           Operations        `yaml:"operations,omitempty" mapstructure:"operations"`
	ContractedFacilities *int              `yaml:"contractedFacilities,omitempty" mapstructure:"contractedFacilities"`
	YearOneRampShare     *float64          `yaml:"yearOneRampShare,omitempty" mapstructure:"yearOneRampShare"`
	Network              *network.Params   `yaml:"network,omitempty" mapstructure:"network"`
	Finance              *FinanceConfig    `yaml:"finance,omitempty" mapstructure:"finance"`
	Profit               *ProfitConfig     `yaml:"profit,omitempty" mapstructure:"profit"`
	Targets              []OptimizerConfig `yaml:"targets,omitempty" mapstructure:"targets"`
}

// PresetRef selects a registry preset by id.
type PresetRef struct {
	Scenario string `yaml:"scenario" mapstructure:"scenario"`
	Mode     string `yaml:"mode,omitempty" mapstructure:"mode"`
	Industry string `yaml:"industry,omitempty" mapstructure:"industry"`
}

// Operations mirrors the quick-mode inputs.
type Operations struct {
	Facilities                int                `yaml:"facilities,omitempty" mapstructure:"facilities"`
	TrucksPerDayPerFacility   float64            `yaml:"trucksPerDayPerFacility,omitempty" mapstructure:"trucksPerDayPerFacility"`
	AvgDwellTimeMinutes       float64            `yaml:"avgDwellTimeMinutes,omitempty" mapstructure:"avgDwellTimeMinutes"`
	DetentionCostPerHour      float64            `yaml:"detentionCostPerHour,omitempty" mapstructure:"detentionCostPerHour"`
	LaborCostPerHour          float64            `yaml:"laborCostPerHour,omitempty" mapstructure:"laborCostPerHour"`
	GateStaffPerFacility      float64            `yaml:"gateStaffPerFacility,omitempty" mapstructure:"gateStaffPerFacility"`
	DwellReductionMinutes     *float64           `yaml:"dwellReductionMinutes,omitempty" mapstructure:"dwellReductionMinutes"`
	GuardAutomationShare      *float64           `yaml:"guardAutomationShare,omitempty" mapstructure:"guardAutomationShare"`
	DetentionRecoveryShare    *float64           `yaml:"detentionRecoveryShare,omitempty" mapstructure:"detentionRecoveryShare"`
	IncrementalMarginPerTruck *float64           `yaml:"incrementalMarginPerTruck,omitempty" mapstructure:"incrementalMarginPerTruck"`
	TierShipmentsPerDay       map[string]float64 `yaml:"tierShipmentsPerDay,omitempty" mapstructure:"tierShipmentsPerDay"`
}

// FinanceConfig carries the time-value assumptions.
type FinanceConfig struct {
	GrowthRate   float64 `yaml:"growthRate" mapstructure:"growthRate"`
	DiscountRate float64 `yaml:"discountRate" mapstructure:"discountRate"`
}

// ProfitConfig selects how a truckload of capacity is valued.
type ProfitConfig struct {
	Method                           string  `yaml:"method" mapstructure:"method"`
	ContributionMarginPerTruckload   float64 `yaml:"contributionMarginPerTruckload,omitempty" mapstructure:"contributionMarginPerTruckload"`
	OutsourcedCostPerTruckload       float64 `yaml:"outsourcedCostPerTruckload,omitempty" mapstructure:"outsourcedCostPerTruckload"`
	InternalVariableCostPerTruckload float64 `yaml:"internalVariableCostPerTruckload,omitempty" mapstructure:"internalVariableCostPerTruckload"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	for i := range configuration.Scenarios {
		for j := range configuration.Scenarios[i].Targets {
			configuration.Scenarios[i].Targets[j].Normalize()
		}
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios marked active, in configured order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, s := range c.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// QuickInput resolves the scenario's preset and overrides into quick-mode
// input. Presets default to the expected mode.
func (s Scenario) QuickInput() (economics.QuickInput, error) {
	q := economics.QuickInput{}
	if s.Preset != nil {
		mode := s.Preset.Mode
		if mode == "" {
			mode = economics.ModeExpected
		}
		var err error
		q, err = economics.GetQuickInputsForPreset(s.Preset.Scenario, mode)
		if err != nil {
			return economics.QuickInput{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if s.Preset.Industry != "" {
			q, err = economics.ApplyIndustryPreset(q, s.Preset.Industry)
			if err != nil {
				return economics.QuickInput{}, fmt.Errorf("scenario %s: %w", s.Name, err)
			}
		}
	}

	ops := s.Operations
	if ops.Facilities != 0 {
		q.Facilities = ops.Facilities
	}
	if ops.TrucksPerDayPerFacility != 0 {
		q.TrucksPerDayPerFacility = ops.TrucksPerDayPerFacility
	}
	if ops.AvgDwellTimeMinutes != 0 {
		q.AvgDwellTimeMinutes = ops.AvgDwellTimeMinutes
	}
	if ops.DetentionCostPerHour != 0 {
		q.DetentionCostPerHour = ops.DetentionCostPerHour
	}
	if ops.LaborCostPerHour != 0 {
		q.LaborCostPerHour = ops.LaborCostPerHour
	}
	if ops.GateStaffPerFacility != 0 {
		q.GateStaffPerFacility = ops.GateStaffPerFacility
	}
	if ops.DwellReductionMinutes != nil {
		q.DwellReductionMinutes = ops.DwellReductionMinutes
	}
	if ops.GuardAutomationShare != nil {
		q.GuardAutomationShare = ops.GuardAutomationShare
	}
	if ops.DetentionRecoveryShare != nil {
		q.DetentionRecoveryShare = ops.DetentionRecoveryShare
	}
	if ops.IncrementalMarginPerTruck != nil {
		q.IncrementalMarginPerTruck = ops.IncrementalMarginPerTruck
	}
	if len(ops.TierShipmentsPerDay) > 0 {
		q.TierShipmentsPerDay = make(map[economics.TierID]float64, len(ops.TierShipmentsPerDay))
		for key, perDay := range ops.TierShipmentsPerDay {
			// viper lowercases map keys
			q.TierShipmentsPerDay[economics.TierID(strings.ToUpper(key))] = perDay
		}
	}

	if s.ContractedFacilities != nil {
		q.ContractedFacilities = s.ContractedFacilities
	}
	if s.YearOneRampShare != nil {
		q.YearOneRampShare = s.YearOneRampShare
	}
	if s.Network != nil {
		params := *s.Network
		q.Network = &params
	}
	if s.Finance != nil {
		q.Finance = &economics.FinanceAssumptions{
			GrowthRate:   s.Finance.GrowthRate,
			DiscountRate: s.Finance.DiscountRate,
		}
	}
	return q, nil
}

// RoiInput normalizes the scenario into the full engine input.
func (s Scenario) RoiInput() (economics.RoiV2Input, error) {
	q, err := s.QuickInput()
	if err != nil {
		return economics.RoiV2Input{}, err
	}
	in, err := economics.RoiV2InputsFromQuickMode(q)
	if err != nil {
		return economics.RoiV2Input{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return in, nil
}

// ScenarioInput builds the profit-aware input. It reports false when the
// scenario has no profit block.
func (s Scenario) ScenarioInput() (economics.ScenarioInput, bool, error) {
	if s.Profit == nil {
		return economics.ScenarioInput{}, false, nil
	}
	in, err := s.RoiInput()
	if err != nil {
		return economics.ScenarioInput{}, false, err
	}
	method := economics.ProfitMethod(strings.ToLower(strings.TrimSpace(s.Profit.Method)))
	if method == "" {
		method = economics.ProfitContributionMargin
	}
	return economics.ScenarioInput{
		Roi: in,
		Profit: economics.ProfitAssumptions{
			Method:                           method,
			ContributionMarginPerTruckload:   s.Profit.ContributionMarginPerTruckload,
			OutsourcedCostPerTruckload:       s.Profit.OutsourcedCostPerTruckload,
			InternalVariableCostPerTruckload: s.Profit.InternalVariableCostPerTruckload,
		},
		DiscountRate: in.Finance.DiscountRate,
		GrowthRate:   in.Finance.GrowthRate,
	}, true, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var scenarios []configprocessor.ScenarioInfo
	for _, scenario := range c.Scenarios {
		info := configprocessor.ScenarioInfo{
			Name:                 scenario.Name,
			Active:               scenario.Active,
			Facilities:           scenario.Operations.Facilities,
			ContractedFacilities: scenario.ContractedFacilities,
			YearOneRampShare:     scenario.YearOneRampShare,
		}
		if scenario.Preset != nil {
			info.Preset = scenario.Preset.Scenario
			if info.Facilities == 0 {
				if preset, err := economics.LookupScenario(scenario.Preset.Scenario); err == nil {
					info.Facilities = preset.Facilities
				}
			}
		}
		scenarios = append(scenarios, info)
	}

	processor := configprocessor.NewProcessor()
	warnings := processor.ValidateConfiguration(c.Output.Format, scenarios)

	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			continue
		}
		for _, target := range scenario.Targets {
			if err := target.Validate(); err != nil {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' target '%s': %v", scenario.Name, target.Name, err))
			}
		}
	}
	return warnings
}
