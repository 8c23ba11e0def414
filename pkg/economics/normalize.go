package economics

import (
	"math"

	"github.com/iwvelando/yard-economics/pkg/network"
)

// Quick-mode defaults for everything the operator is not asked about.
const (
	DefaultYearOneRampShare     = 0.7
	DefaultMinFteAnnualCost     = 60000.0
	DefaultRealizedShare        = 0.10
	DefaultOutboundShare        = 0.60
	DefaultMarginPerTruck       = 500.0
	DefaultGrowthRate           = 0.02
	DefaultDiscountRate         = 0.0
	maxCheckReductionMinutes    = 5.0
	checkReductionShareOfDwell  = 0.25
	defaultDetentionRecovery    = 0.65
	defaultImplementationPerFac = 2500.0
	defaultSubscriptionPerFac   = 8000.0
)

// QuickInput is the small operator-facing input set. Optional fields left nil
// take the calibrated defaults.
type QuickInput struct {
	Facilities              int     `json:"facilities"`
	TrucksPerDayPerFacility float64 `json:"trucksPerDayPerFacility"`
	AvgDwellTimeMinutes     float64 `json:"avgDwellTimeMinutes"`
	DetentionCostPerHour    float64 `json:"detentionCostPerHour"`
	LaborCostPerHour        float64 `json:"laborCostPerHour"`
	GateStaffPerFacility    float64 `json:"gateStaffPerFacility"`

	Network                   *network.Params     `json:"network,omitempty"`
	ContractedFacilities      *int                `json:"contractedFacilities,omitempty"`
	YearOneRampShare          *float64            `json:"yearOneRampShare,omitempty"`
	DwellReductionMinutes     *float64            `json:"dwellReductionMinutes,omitempty"`
	GuardAutomationShare      *float64            `json:"guardAutomationShare,omitempty"`
	DetentionRecoveryShare    *float64            `json:"detentionRecoveryShare,omitempty"`
	IncrementalMarginPerTruck *float64            `json:"incrementalMarginPerTruck,omitempty"`
	Finance                   *FinanceAssumptions `json:"finance,omitempty"`
	TierShipmentsPerDay       map[TierID]float64  `json:"tierShipmentsPerDay,omitempty"`
}

func (q QuickInput) validate() error {
	if q.Facilities < 1 {
		return invalid("facilities", q.Facilities, "must be >= 1")
	}
	if q.Facilities > MaxFacilities {
		return invalid("facilities", q.Facilities, "exceeds the supported network size")
	}
	if err := checkAll(
		checkPositive("trucksPerDayPerFacility", q.TrucksPerDayPerFacility),
		checkPositive("avgDwellTimeMinutes", q.AvgDwellTimeMinutes),
		checkNonNegative("detentionCostPerHour", q.DetentionCostPerHour),
		checkNonNegative("laborCostPerHour", q.LaborCostPerHour),
		checkNonNegative("gateStaffPerFacility", q.GateStaffPerFacility),
	); err != nil {
		return err
	}
	for id, perDay := range q.TierShipmentsPerDay {
		if _, ok := tierWeightPercent[id]; !ok {
			return invalid("tierShipmentsPerDay", id, "unknown tier")
		}
		if err := checkPositive("tierShipmentsPerDay."+string(id), perDay); err != nil {
			return err
		}
	}
	if q.DwellReductionMinutes != nil {
		d := *q.DwellReductionMinutes
		if err := checkNonNegative("dwellReductionMinutes", d); err != nil {
			return err
		}
		if d >= q.AvgDwellTimeMinutes {
			return invalid("dwellReductionMinutes", d, "must be less than avgDwellTimeMinutes")
		}
	}
	if q.ContractedFacilities != nil && *q.ContractedFacilities < 0 {
		return invalid("contractedFacilities", *q.ContractedFacilities, "must be >= 0")
	}
	return nil
}

// RoiV2InputsFromQuickMode expands a quick input into the full engine input.
// It never returns a partial result: on error the input is the zero value.
func RoiV2InputsFromQuickMode(q QuickInput) (RoiV2Input, error) {
	if err := q.validate(); err != nil {
		return RoiV2Input{}, err
	}

	counts := DistributeFacilities(q.Facilities)
	tiers := make(map[TierID]FacilityTier, len(counts))
	for _, id := range Tiers() {
		perDay := q.TrucksPerDayPerFacility
		if override, ok := q.TierShipmentsPerDay[id]; ok {
			perDay = override
		}
		tiers[id] = FacilityTier{ID: id, Count: counts[id], ShipmentsPerDay: perDay}
	}

	labor := defaultLaborTiers()
	if q.GuardAutomationShare != nil {
		for id, tier := range labor {
			tier.GuardAutomationShare = *q.GuardAutomationShare
			labor[id] = tier
		}
	}

	checkIn := math.Min(maxCheckReductionMinutes, q.AvgDwellTimeMinutes*checkReductionShareOfDwell)
	checkOut := checkIn
	if q.DwellReductionMinutes != nil {
		checkIn = *q.DwellReductionMinutes / 2
		checkOut = *q.DwellReductionMinutes - checkIn
	}

	margin := DefaultMarginPerTruck
	if q.IncrementalMarginPerTruck != nil {
		margin = *q.IncrementalMarginPerTruck
	}

	detention := defaultDetention()
	if q.DetentionRecoveryShare != nil {
		detention.RecoveryShare = *q.DetentionRecoveryShare
	}

	finance := FinanceAssumptions{GrowthRate: DefaultGrowthRate, DiscountRate: DefaultDiscountRate}
	if q.Finance != nil {
		finance = *q.Finance
	}

	params := network.DefaultParams()
	if q.Network != nil {
		params = *q.Network
	}

	contracted := q.Facilities
	if q.ContractedFacilities != nil {
		contracted = *q.ContractedFacilities
	}

	ramp := DefaultYearOneRampShare
	if q.YearOneRampShare != nil {
		ramp = *q.YearOneRampShare
	}

	in := RoiV2Input{
		Tiers: tiers,
		Labor: labor,
		Throughput: ThroughputAssumptions{
			AvgGateInToOutMinutes:     q.AvgDwellTimeMinutes,
			ReduceCheckInMinutes:      checkIn,
			ReduceCheckOutMinutes:     checkOut,
			RealizedShare:             DefaultRealizedShare,
			OutboundShare:             DefaultOutboundShare,
			IncrementalMarginPerTruck: margin,
		},
		Costs: CostAssumptions{
			DetentionCostPerHour: q.DetentionCostPerHour,
			LaborCostPerHour:     q.LaborCostPerHour,
			GateStaffPerFacility: q.GateStaffPerFacility,
			MinFteAnnualCost:     DefaultMinFteAnnualCost,
		},
		Paper:     defaultPaper(),
		Shipper:   defaultShipper(),
		Detention: detention,
		Commercial: CommercialAssumptions{
			ImplementationCostPerFacility: defaultImplementationPerFac,
			AnnualSubscriptionPerFacility: defaultSubscriptionPerFac,
		},
		Finance:              finance,
		Network:              params,
		ContractedFacilities: contracted,
		YearOneRampShare:     ramp,
	}

	if err := in.Validate(); err != nil {
		return RoiV2Input{}, err
	}
	return in, nil
}

func defaultPaper() PaperAssumptions {
	return PaperAssumptions{
		PagesPerBol:        3,
		BolsPerShipment:    3,
		OutboundShare:      DefaultOutboundShare,
		PrintCostPerPage:   0.08,
		StorageCostPerPage: 0.02,
		Phase1SavedShare:   0.5,
	}
}

func defaultShipper() ShipperAssumptions {
	return ShipperAssumptions{
		CostPerShipment:     750,
		PaidByCustomerShare: 0.2,
		NonOwnedFleetShare:  0.9,
		DiscountShare:       0.11,
		RealizedShare:       0.1,
	}
}

func defaultDetention() DetentionAssumptions {
	return DetentionAssumptions{
		IncidenceShare:    0.15,
		AvgBillableHours:  1.5,
		AtFacilitiesShare: 0.4,
		RecoveryShare:     defaultDetentionRecovery,
	}
}
