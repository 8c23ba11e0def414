// Package economics implements the yard ROI engine: the quick-input
// normalizer, the tiered savings calculator, the financial projector and the
// scenario adapter. Every function is pure and safe for concurrent use.
package economics

import (
	"github.com/iwvelando/yard-economics/pkg/network"
)

// TierID identifies a facility size bucket.
type TierID string

// Facility tiers
const (
	TierXL TierID = "XL"
	TierL  TierID = "L"
	TierM  TierID = "M"
	TierS  TierID = "S"
)

// Tiers returns the canonical iteration order XL, L, M, S.
func Tiers() []TierID {
	return []TierID{TierXL, TierL, TierM, TierS}
}

// FacilityTier is one size bucket of the modeled network.
type FacilityTier struct {
	ID              TierID  `json:"id"`
	Count           int     `json:"count"`
	ShipmentsPerDay float64 `json:"shipmentsPerDay"`
}

// LaborTier describes dock-office and gate staffing for one tier.
type LaborTier struct {
	DockOfficeFtePerShift  float64 `json:"dockOfficeFtePerShift"`
	ShiftsPerDay           float64 `json:"shiftsPerDay"`
	DriverProcessTimeShare float64 `json:"driverProcessTimeShare"`
	TimeSavedShare         float64 `json:"timeSavedShare"`
	GuardAutomationShare   float64 `json:"guardAutomationShare"`
}

// ThroughputAssumptions drive the cycle-time component.
type ThroughputAssumptions struct {
	AvgGateInToOutMinutes     float64 `json:"avgGateInToOutMinutes"`
	ReduceCheckInMinutes      float64 `json:"reduceCheckInMinutes"`
	ReduceCheckOutMinutes     float64 `json:"reduceCheckOutMinutes"`
	RealizedShare             float64 `json:"realizedShare"`
	OutboundShare             float64 `json:"outboundShare"`
	IncrementalMarginPerTruck float64 `json:"incrementalMarginPerTruck"`
}

// CostAssumptions are the operator's cost rates.
type CostAssumptions struct {
	DetentionCostPerHour float64 `json:"detentionCostPerHour"`
	LaborCostPerHour     float64 `json:"laborCostPerHour"`
	GateStaffPerFacility float64 `json:"gateStaffPerFacility"`
	MinFteAnnualCost     float64 `json:"minFteAnnualCost"`
}

// PaperAssumptions drive the paperless component.
type PaperAssumptions struct {
	PagesPerBol           float64 `json:"pagesPerBol"`
	BolsPerShipment       float64 `json:"bolsPerShipment"`
	OtherPagesPerShipment float64 `json:"otherPagesPerShipment"`
	OutboundShare         float64 `json:"outboundShare"`
	PrintCostPerPage      float64 `json:"printCostPerPage"`
	StorageCostPerPage    float64 `json:"storageCostPerPage"`
	Phase1SavedShare      float64 `json:"phase1SavedShare"`
}

// ShipperAssumptions value the shipper-of-choice discount carriers give to
// faster yards.
type ShipperAssumptions struct {
	CostPerShipment     float64 `json:"costPerShipment"`
	PaidByCustomerShare float64 `json:"paidByCustomerShare"`
	NonOwnedFleetShare  float64 `json:"nonOwnedFleetShare"`
	DiscountShare       float64 `json:"discountShare"`
	RealizedShare       float64 `json:"realizedShare"`
}

// DetentionAssumptions describe billable detention and how much of it the
// yard system recovers.
type DetentionAssumptions struct {
	IncidenceShare    float64 `json:"incidenceShare"`
	AvgBillableHours  float64 `json:"avgBillableHours"`
	AtFacilitiesShare float64 `json:"atFacilitiesShare"`
	RecoveryShare     float64 `json:"recoveryShare"`
}

// CommercialAssumptions are the vendor's prices. They scale with contracted
// facilities, never with the ramp.
type CommercialAssumptions struct {
	ImplementationBaseCost        float64 `json:"implementationBaseCost"`
	ImplementationCostPerFacility float64 `json:"implementationCostPerFacility"`
	AnnualSubscriptionPerFacility float64 `json:"annualSubscriptionPerFacility"`
}

// EnterpriseAddOns are optional per-shipment value items.
type EnterpriseAddOns struct {
	DockClerkProductivity    float64 `json:"dockClerkProductivity"`
	YardSpotterProductivity  float64 `json:"yardSpotterProductivity"`
	OsdSearchTime            float64 `json:"osdSearchTime"`
	DetentionClaimsReduction float64 `json:"detentionClaimsReduction"`
	LostBolsLostSales        float64 `json:"lostBolsLostSales"`
	ManualWmsFailoverSavings float64 `json:"manualWmsFailoverSavings"`
	MissedDeliveries         float64 `json:"missedDeliveries"`
}

// LaborPerShipment is the labor share of the add-ons.
func (a EnterpriseAddOns) LaborPerShipment() float64 {
	return a.DockClerkProductivity + a.YardSpotterProductivity + a.OsdSearchTime
}

// DetentionPerShipment is the detention share of the add-ons.
func (a EnterpriseAddOns) DetentionPerShipment() float64 {
	return a.DetentionClaimsReduction
}

// ThroughputPerShipment is the throughput share of the add-ons.
func (a EnterpriseAddOns) ThroughputPerShipment() float64 {
	return a.LostBolsLostSales + a.ManualWmsFailoverSavings + a.MissedDeliveries
}

// FinanceAssumptions are the time-value rates of the five-year view.
type FinanceAssumptions struct {
	GrowthRate   float64 `json:"growthRate"`
	DiscountRate float64 `json:"discountRate"`
}

// RoiV2Input is the fully normalized engine input. Quick mode builds one via
// RoiV2InputsFromQuickMode; deep mode supplies it directly.
type RoiV2Input struct {
	Tiers                map[TierID]FacilityTier `json:"tiers"`
	Labor                map[TierID]LaborTier    `json:"labor"`
	Throughput           ThroughputAssumptions   `json:"throughput"`
	Costs                CostAssumptions         `json:"costs"`
	Paper                PaperAssumptions        `json:"paper"`
	Shipper              ShipperAssumptions      `json:"shipper"`
	Detention            DetentionAssumptions    `json:"detention"`
	Commercial           CommercialAssumptions   `json:"commercial"`
	EnterpriseAddOns     EnterpriseAddOns        `json:"enterpriseAddOns"`
	Finance              FinanceAssumptions      `json:"finance"`
	Network              network.Params          `json:"network"`
	ContractedFacilities int                     `json:"contractedFacilities"`
	YearOneRampShare     float64                 `json:"yearOneRampShare"`
}

// Clone returns a deep copy so callers can derive variants without touching
// the original.
func (in RoiV2Input) Clone() RoiV2Input {
	out := in
	if in.Tiers != nil {
		out.Tiers = make(map[TierID]FacilityTier, len(in.Tiers))
		for id, tier := range in.Tiers {
			out.Tiers[id] = tier
		}
	}
	if in.Labor != nil {
		out.Labor = make(map[TierID]LaborTier, len(in.Labor))
		for id, labor := range in.Labor {
			out.Labor[id] = labor
		}
	}
	return out
}

// TotalFacilities is the modeled facility count, the sum of the tier counts.
func (in RoiV2Input) TotalFacilities() int {
	total := 0
	for _, id := range Tiers() {
		if tier, ok := in.Tiers[id]; ok && tier.Count > 0 {
			total += tier.Count
		}
	}
	return total
}

// EnterpriseAddOnsResult is the annualized add-on value.
type EnterpriseAddOnsResult struct {
	LaborPerShipment       float64 `json:"laborPerShipment"`
	DetentionPerShipment   float64 `json:"detentionPerShipment"`
	ThroughputPerShipment  float64 `json:"throughputPerShipment"`
	AnnualLaborSavings     float64 `json:"annualLaborSavings"`
	AnnualDetentionSavings float64 `json:"annualDetentionSavings"`
	ThroughputValue        float64 `json:"throughputValue"`
	TotalAnnualValue       float64 `json:"totalAnnualValue"`
}

// BaseSavings is the output of the savings calculator.
type BaseSavings struct {
	TotalFacilities          int     `json:"totalFacilities"`
	TotalShipmentsPerYear    float64 `json:"totalShipmentsPerYear"`
	OutboundShipmentsPerYear float64 `json:"outboundShipmentsPerYear"`

	AnnualLaborSavings     float64 `json:"annualLaborSavings"`
	PaperlessSavings       float64 `json:"paperlessSavings"`
	AnnualDetentionSavings float64 `json:"annualDetentionSavings"`
	ThroughputValue        float64 `json:"throughputValue"`

	YardThroughputValue   float64 `json:"yardThroughputValue"`
	ShipperOfChoiceValue  float64 `json:"shipperOfChoiceValue"`
	TheoreticalCycleGain  float64 `json:"theoreticalCycleGain"`
	RealizedCycleGain     float64 `json:"realizedCycleGain"`
	IncrementalTruckloads float64 `json:"incrementalTruckloads"`

	EnterpriseAddOns EnterpriseAddOnsResult `json:"enterpriseAddOns"`

	Total float64 `json:"baseSavings"`
}

// RoiV2Result is the full projection for one input.
type RoiV2Result struct {
	ModelVersion string `json:"modelVersion"`

	TotalFacilities          int     `json:"totalFacilities"`
	TotalShipmentsPerYear    float64 `json:"totalShipmentsPerYear"`
	OutboundShipmentsPerYear float64 `json:"outboundShipmentsPerYear"`

	AnnualLaborSavings     float64                `json:"annualLaborSavings"`
	PaperlessSavings       float64                `json:"paperlessSavings"`
	AnnualDetentionSavings float64                `json:"annualDetentionSavings"`
	ThroughputValue        float64                `json:"throughputValue"`
	ShipperOfChoiceValue   float64                `json:"shipperOfChoiceValue"`
	EnterpriseAddOns       EnterpriseAddOnsResult `json:"enterpriseAddOns"`

	BaseSavings            float64           `json:"baseSavings"`
	NetworkMultiplier      float64           `json:"networkMultiplier"`
	NetworkBonusSavings    float64           `json:"networkBonusSavings"`
	NetworkEffectBreakdown network.Breakdown `json:"networkEffectBreakdown"`
	TotalAnnualSavings     float64           `json:"totalAnnualSavings"`

	ImplementationCost  float64 `json:"implementationCost"`
	AnnualSubscription  float64 `json:"annualSubscription"`
	YearOneGrossSavings float64 `json:"yearOneGrossSavings"`
	YearOneNetGain      float64 `json:"yearOneNetGain"`
	YearOneRoiPercent   float64 `json:"yearOneRoiPercent"`
	PaybackMonths       float64 `json:"paybackMonths"`
	FiveYearValue       float64 `json:"fiveYearValue"`
}

// HasPayback reports whether the savings ever recover the cost basis.
func (r RoiV2Result) HasPayback() bool {
	return r.PaybackMonths != NoPayback
}
