package economics

import (
	"github.com/iwvelando/yard-economics/pkg/network"
)

// ScenarioPreset is a named network size.
type ScenarioPreset struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Facilities  int    `json:"facilities"`
	Description string `json:"description"`
}

// ModePreset is a named set of operating assumptions.
type ModePreset struct {
	ID                      string         `json:"id"`
	Label                   string         `json:"label"`
	Description             string         `json:"description"`
	TrucksPerDayPerFacility float64        `json:"trucksPerDayPerFacility"`
	AvgDwellTimeMinutes     float64        `json:"avgDwellTimeMinutes"`
	DetentionCostPerHour    float64        `json:"detentionCostPerHour"`
	LaborCostPerHour        float64        `json:"laborCostPerHour"`
	GateStaffPerFacility    float64        `json:"gateStaffPerFacility"`
	Network                 network.Params `json:"network"`
}

// IndustryPreset adjusts a quick input to typical industry operations.
type IndustryPreset struct {
	ID                       string  `json:"id"`
	Label                    string  `json:"label"`
	Description              string  `json:"description"`
	LaborReductionPercent    float64 `json:"laborReductionPercent"`
	DwellReductionMinutes    float64 `json:"dwellReductionMinutes"`
	DetentionRecoveryPercent float64 `json:"detentionRecoveryPercent"`
	TrucksPerDayPerFacility  float64 `json:"trucksPerDayPerFacility"`
}

// Scenario ids
const (
	ScenarioPilot      = "pilot_1"
	ScenarioRegional   = "regional_10"
	ScenarioEnterprise = "enterprise_50"
	ScenarioPrimo      = "primo_260"
)

// Mode ids
const (
	ModeConservative = "conservative"
	ModeExpected     = "expected"
	ModeUpside       = "upside"
)

var scenarioPresets = []ScenarioPreset{
	{ID: ScenarioPilot, Label: "Pilot", Facilities: 1, Description: "Single-site pilot"},
	{ID: ScenarioRegional, Label: "Regional", Facilities: 10, Description: "Regional rollout"},
	{ID: ScenarioEnterprise, Label: "Enterprise", Facilities: 50, Description: "Enterprise network"},
	{ID: ScenarioPrimo, Label: "Full network", Facilities: 260, Description: "Full 260-facility network"},
}

var modePresets = []ModePreset{
	{
		ID: ModeConservative, Label: "Conservative", Description: "Lower throughput, higher costs",
		TrucksPerDayPerFacility: 120, AvgDwellTimeMinutes: 60, DetentionCostPerHour: 85,
		LaborCostPerHour: 32, GateStaffPerFacility: 5,
		Network: network.Params{Beta: 0.003, Tau: 60},
	},
	{
		ID: ModeExpected, Label: "Expected", Description: "Industry-standard assumptions",
		TrucksPerDayPerFacility: 150, AvgDwellTimeMinutes: 55, DetentionCostPerHour: 75,
		LaborCostPerHour: 28, GateStaffPerFacility: 4,
		Network: network.Params{Beta: 0.004, Tau: 45},
	},
	{
		ID: ModeUpside, Label: "Upside", Description: "Optimistic throughput, lower costs",
		TrucksPerDayPerFacility: 180, AvgDwellTimeMinutes: 50, DetentionCostPerHour: 65,
		LaborCostPerHour: 25, GateStaffPerFacility: 3,
		Network: network.Params{Beta: 0.006, Tau: 35},
	},
}

var industryPresets = []IndustryPreset{
	{ID: "retail", Label: "Retail / Distribution", Description: "High volume, time-sensitive deliveries",
		LaborReductionPercent: 70, DwellReductionMinutes: 24, DetentionRecoveryPercent: 65, TrucksPerDayPerFacility: 180},
	{ID: "3pl", Label: "3PL / Logistics", Description: "Multi-client, variable operations",
		LaborReductionPercent: 65, DwellReductionMinutes: 30, DetentionRecoveryPercent: 60, TrucksPerDayPerFacility: 150},
	{ID: "manufacturing", Label: "Manufacturing", Description: "Inbound materials, scheduled outbound",
		LaborReductionPercent: 60, DwellReductionMinutes: 20, DetentionRecoveryPercent: 55, TrucksPerDayPerFacility: 100},
	{ID: "food-bev", Label: "Food & Beverage", Description: "Temperature-sensitive, tight windows",
		LaborReductionPercent: 68, DwellReductionMinutes: 28, DetentionRecoveryPercent: 70, TrucksPerDayPerFacility: 160},
	{ID: "automotive", Label: "Automotive", Description: "Just-in-time parts flow",
		LaborReductionPercent: 62, DwellReductionMinutes: 22, DetentionRecoveryPercent: 58, TrucksPerDayPerFacility: 120},
}

// ScenarioPresets lists the network-size presets in ascending order.
func ScenarioPresets() []ScenarioPreset {
	return append([]ScenarioPreset(nil), scenarioPresets...)
}

// ModePresets lists the assumption modes from most to least cautious.
func ModePresets() []ModePreset {
	return append([]ModePreset(nil), modePresets...)
}

// IndustryPresets lists the industry adjustments.
func IndustryPresets() []IndustryPreset {
	return append([]IndustryPreset(nil), industryPresets...)
}

// LookupScenario returns the preset with the given id.
func LookupScenario(id string) (ScenarioPreset, error) {
	for _, p := range scenarioPresets {
		if p.ID == id {
			return p, nil
		}
	}
	return ScenarioPreset{}, invalid("scenario", id, "unknown scenario preset")
}

// LookupMode returns the mode with the given id.
func LookupMode(id string) (ModePreset, error) {
	for _, p := range modePresets {
		if p.ID == id {
			return p, nil
		}
	}
	return ModePreset{}, invalid("mode", id, "unknown mode preset")
}

// LookupIndustry returns the industry preset with the given id.
func LookupIndustry(id string) (IndustryPreset, error) {
	for _, p := range industryPresets {
		if p.ID == id {
			return p, nil
		}
	}
	return IndustryPreset{}, invalid("industry", id, "unknown industry preset")
}

// GetQuickInputsForPreset builds the quick input for a scenario and mode.
func GetQuickInputsForPreset(scenarioID, modeID string) (QuickInput, error) {
	scenario, err := LookupScenario(scenarioID)
	if err != nil {
		return QuickInput{}, err
	}
	mode, err := LookupMode(modeID)
	if err != nil {
		return QuickInput{}, err
	}
	params := mode.Network
	return QuickInput{
		Facilities:              scenario.Facilities,
		TrucksPerDayPerFacility: mode.TrucksPerDayPerFacility,
		AvgDwellTimeMinutes:     mode.AvgDwellTimeMinutes,
		DetentionCostPerHour:    mode.DetentionCostPerHour,
		LaborCostPerHour:        mode.LaborCostPerHour,
		GateStaffPerFacility:    mode.GateStaffPerFacility,
		Network:                 &params,
	}, nil
}

// GetRoiV2InputsForPreset builds the full engine input for a scenario and mode.
func GetRoiV2InputsForPreset(scenarioID, modeID string) (RoiV2Input, error) {
	q, err := GetQuickInputsForPreset(scenarioID, modeID)
	if err != nil {
		return RoiV2Input{}, err
	}
	return RoiV2InputsFromQuickMode(q)
}

// ApplyIndustryPreset returns a copy of q adjusted to the industry. The
// caller's value is left untouched.
func ApplyIndustryPreset(q QuickInput, industryID string) (QuickInput, error) {
	industry, err := LookupIndustry(industryID)
	if err != nil {
		return QuickInput{}, err
	}

	out := q
	out.TrucksPerDayPerFacility = industry.TrucksPerDayPerFacility
	automation := industry.LaborReductionPercent / 100
	out.GuardAutomationShare = &automation
	recovery := industry.DetentionRecoveryPercent / 100
	out.DetentionRecoveryShare = &recovery
	if industry.DwellReductionMinutes < q.AvgDwellTimeMinutes {
		reduction := industry.DwellReductionMinutes
		out.DwellReductionMinutes = &reduction
	}
	if q.TierShipmentsPerDay != nil {
		out.TierShipmentsPerDay = make(map[TierID]float64, len(q.TierShipmentsPerDay))
		for id, v := range q.TierShipmentsPerDay {
			out.TierShipmentsPerDay[id] = v
		}
	}
	return out, nil
}
