package economics

import (
	"fmt"

	"github.com/iwvelando/yard-economics/pkg/mathutil"
	"github.com/iwvelando/yard-economics/pkg/network"
)

// MaxFacilities bounds the modeled network size.
const MaxFacilities = 1_000_000

func checkFinite(field string, v float64) error {
	if !mathutil.IsFinite(v) {
		return invalid(field, v, "must be finite")
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, v, "must be >= 0")
	}
	return nil
}

func checkPositive(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return invalid(field, v, "must be > 0")
	}
	return nil
}

func checkShare(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 || v > 1 {
		return invalid(field, v, "must be within [0, 1]")
	}
	return nil
}

func checkAll(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate enforces the input boundary shared by quick and deep mode. It
// returns the first *InvalidInputError found.
func (in RoiV2Input) Validate() error {
	for _, id := range Tiers() {
		tier, ok := in.Tiers[id]
		if !ok {
			continue
		}
		prefix := fmt.Sprintf("tiers.%s", id)
		if tier.Count < 0 {
			return invalid(prefix+".count", tier.Count, "must be >= 0")
		}
		if tier.Count == 0 {
			if err := checkNonNegative(prefix+".shipmentsPerDay", tier.ShipmentsPerDay); err != nil {
				return err
			}
			continue
		}
		if err := checkPositive(prefix+".shipmentsPerDay", tier.ShipmentsPerDay); err != nil {
			return err
		}

		labor, ok := in.Labor[id]
		if !ok {
			return invalid("labor."+string(id), nil, "staffing profile required for a populated tier")
		}
		lp := "labor." + string(id)
		if err := checkAll(
			checkNonNegative(lp+".dockOfficeFtePerShift", labor.DockOfficeFtePerShift),
			checkNonNegative(lp+".shiftsPerDay", labor.ShiftsPerDay),
			checkShare(lp+".driverProcessTimeShare", labor.DriverProcessTimeShare),
			checkShare(lp+".timeSavedShare", labor.TimeSavedShare),
			checkShare(lp+".guardAutomationShare", labor.GuardAutomationShare),
		); err != nil {
			return err
		}
	}

	total := in.TotalFacilities()
	if total < 1 {
		return invalid("tiers", total, "at least one facility is required")
	}
	if total > MaxFacilities {
		return invalid("tiers", total, fmt.Sprintf("at most %d facilities are supported", MaxFacilities))
	}

	t := in.Throughput
	if err := checkAll(
		checkPositive("throughput.avgGateInToOutMinutes", t.AvgGateInToOutMinutes),
		checkNonNegative("throughput.reduceCheckInMinutes", t.ReduceCheckInMinutes),
		checkNonNegative("throughput.reduceCheckOutMinutes", t.ReduceCheckOutMinutes),
		checkShare("throughput.realizedShare", t.RealizedShare),
		checkShare("throughput.outboundShare", t.OutboundShare),
		checkNonNegative("throughput.incrementalMarginPerTruck", t.IncrementalMarginPerTruck),
	); err != nil {
		return err
	}
	if reduction := t.ReduceCheckInMinutes + t.ReduceCheckOutMinutes; reduction >= t.AvgGateInToOutMinutes {
		return invalid("throughput.reduceCheckInMinutes+reduceCheckOutMinutes", reduction,
			fmt.Sprintf("must be less than avgGateInToOutMinutes (%v)", t.AvgGateInToOutMinutes))
	}

	c := in.Costs
	p := in.Paper
	s := in.Shipper
	d := in.Detention
	m := in.Commercial
	a := in.EnterpriseAddOns
	if err := checkAll(
		checkNonNegative("costs.detentionCostPerHour", c.DetentionCostPerHour),
		checkNonNegative("costs.laborCostPerHour", c.LaborCostPerHour),
		checkNonNegative("costs.gateStaffPerFacility", c.GateStaffPerFacility),
		checkNonNegative("costs.minFteAnnualCost", c.MinFteAnnualCost),

		checkNonNegative("paper.pagesPerBol", p.PagesPerBol),
		checkNonNegative("paper.bolsPerShipment", p.BolsPerShipment),
		checkNonNegative("paper.otherPagesPerShipment", p.OtherPagesPerShipment),
		checkShare("paper.outboundShare", p.OutboundShare),
		checkNonNegative("paper.printCostPerPage", p.PrintCostPerPage),
		checkNonNegative("paper.storageCostPerPage", p.StorageCostPerPage),
		checkShare("paper.phase1SavedShare", p.Phase1SavedShare),

		checkNonNegative("shipper.costPerShipment", s.CostPerShipment),
		checkShare("shipper.paidByCustomerShare", s.PaidByCustomerShare),
		checkShare("shipper.nonOwnedFleetShare", s.NonOwnedFleetShare),
		checkShare("shipper.discountShare", s.DiscountShare),
		checkShare("shipper.realizedShare", s.RealizedShare),

		checkShare("detention.incidenceShare", d.IncidenceShare),
		checkNonNegative("detention.avgBillableHours", d.AvgBillableHours),
		checkShare("detention.atFacilitiesShare", d.AtFacilitiesShare),
		checkShare("detention.recoveryShare", d.RecoveryShare),

		checkNonNegative("commercial.implementationBaseCost", m.ImplementationBaseCost),
		checkNonNegative("commercial.implementationCostPerFacility", m.ImplementationCostPerFacility),
		checkNonNegative("commercial.annualSubscriptionPerFacility", m.AnnualSubscriptionPerFacility),

		checkNonNegative("enterpriseAddOns.dockClerkProductivity", a.DockClerkProductivity),
		checkNonNegative("enterpriseAddOns.yardSpotterProductivity", a.YardSpotterProductivity),
		checkNonNegative("enterpriseAddOns.osdSearchTime", a.OsdSearchTime),
		checkNonNegative("enterpriseAddOns.detentionClaimsReduction", a.DetentionClaimsReduction),
		checkNonNegative("enterpriseAddOns.lostBolsLostSales", a.LostBolsLostSales),
		checkNonNegative("enterpriseAddOns.manualWmsFailoverSavings", a.ManualWmsFailoverSavings),
		checkNonNegative("enterpriseAddOns.missedDeliveries", a.MissedDeliveries),
	); err != nil {
		return err
	}

	if err := validateRates(in.Finance.DiscountRate, in.Finance.GrowthRate); err != nil {
		return err
	}

	if err := ValidateNetworkParams(in.Network); err != nil {
		return err
	}

	if in.ContractedFacilities < 0 {
		return invalid("contractedFacilities", in.ContractedFacilities, "must be >= 0")
	}
	return checkShare("yearOneRampShare", in.YearOneRampShare)
}

// ValidateNetworkParams requires a finite beta >= 0 and a finite tau > 0.
func ValidateNetworkParams(p network.Params) error {
	return checkAll(
		checkNonNegative("network.beta", p.Beta),
		checkPositive("network.tau", p.Tau),
	)
}

// checkVolumes rejects inputs whose aggregate volumes or savings overflow
// float64 even though every field is individually finite.
func checkVolumes(base BaseSavings) error {
	return checkAll(
		checkFinite("totalShipmentsPerYear", base.TotalShipmentsPerYear),
		checkFinite("annualLaborSavings", base.AnnualLaborSavings),
		checkFinite("paperlessSavings", base.PaperlessSavings),
		checkFinite("annualDetentionSavings", base.AnnualDetentionSavings),
		checkFinite("throughputValue", base.ThroughputValue),
		checkFinite("baseSavings", base.Total),
	)
}

// validateRates bounds the time-value rates to [-1, 1] and keeps the discount
// factor strictly positive.
func validateRates(discountRate, growthRate float64) error {
	if err := checkFinite("discountRate", discountRate); err != nil {
		return err
	}
	if discountRate <= -1 || discountRate > 1 {
		return invalid("discountRate", discountRate, "must be within (-1, 1]")
	}
	if err := checkFinite("growthRate", growthRate); err != nil {
		return err
	}
	if growthRate < -1 || growthRate > 1 {
		return invalid("growthRate", growthRate, "must be within [-1, 1]")
	}
	return nil
}
