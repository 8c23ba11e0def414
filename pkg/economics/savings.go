package economics

import (
	"math"

	"github.com/iwvelando/yard-economics/pkg/constants"
)

// minGateMinutes keeps the improved cycle time strictly positive.
const minGateMinutes = 0.0001

// ComputeBaseSavings returns the four annual savings components and their
// sum. The input is assumed to have passed Validate; it is never modified.
func ComputeBaseSavings(in RoiV2Input) BaseSavings {
	var out BaseSavings

	for _, id := range Tiers() {
		tier, ok := in.Tiers[id]
		if !ok || tier.Count <= 0 {
			continue
		}
		out.TotalFacilities += tier.Count
		out.TotalShipmentsPerYear += float64(tier.Count) * math.Max(0, tier.ShipmentsPerDay) * constants.OperatingDaysPerYear
	}
	shipments := out.TotalShipmentsPerYear
	out.OutboundShipmentsPerYear = shipments * in.Paper.OutboundShare

	addOns := in.EnterpriseAddOns
	out.EnterpriseAddOns = EnterpriseAddOnsResult{
		LaborPerShipment:       addOns.LaborPerShipment(),
		DetentionPerShipment:   addOns.DetentionPerShipment(),
		ThroughputPerShipment:  addOns.ThroughputPerShipment(),
		AnnualLaborSavings:     addOns.LaborPerShipment() * shipments,
		AnnualDetentionSavings: addOns.DetentionPerShipment() * shipments,
		ThroughputValue:        addOns.ThroughputPerShipment() * shipments,
	}
	out.EnterpriseAddOns.TotalAnnualValue = out.EnterpriseAddOns.AnnualLaborSavings +
		out.EnterpriseAddOns.AnnualDetentionSavings +
		out.EnterpriseAddOns.ThroughputValue

	out.AnnualLaborSavings = laborSavings(in) + out.EnterpriseAddOns.AnnualLaborSavings
	out.PaperlessSavings = paperlessSavings(in.Paper, shipments)
	out.AnnualDetentionSavings = detentionSavings(in.Detention, in.Costs, shipments) + out.EnterpriseAddOns.AnnualDetentionSavings

	t := in.Throughput
	baseline := math.Max(minGateMinutes, t.AvgGateInToOutMinutes)
	improved := math.Max(minGateMinutes, baseline-t.ReduceCheckInMinutes-t.ReduceCheckOutMinutes)
	out.TheoreticalCycleGain = math.Max(0, baseline/improved-1)
	out.RealizedCycleGain = out.TheoreticalCycleGain * t.RealizedShare
	out.IncrementalTruckloads = shipments * t.OutboundShare * out.RealizedCycleGain
	out.YardThroughputValue = out.IncrementalTruckloads * t.IncrementalMarginPerTruck

	s := in.Shipper
	out.ShipperOfChoiceValue = s.CostPerShipment * s.DiscountShare * s.RealizedShare *
		shipments * s.PaidByCustomerShare * s.NonOwnedFleetShare

	out.ThroughputValue = out.YardThroughputValue + out.ShipperOfChoiceValue + out.EnterpriseAddOns.ThroughputValue

	out.Total = out.AnnualLaborSavings + out.PaperlessSavings + out.AnnualDetentionSavings + out.ThroughputValue
	return out
}

// FteAnnualCost is the loaded annual cost of one saved position.
func FteAnnualCost(costs CostAssumptions) float64 {
	return math.Max(costs.MinFteAnnualCost, costs.LaborCostPerHour*constants.HoursPerYear)
}

// SavedFtePerFacility counts whole positions released at one facility of a
// tier. Fractional positions are not savings.
func SavedFtePerFacility(labor LaborTier, gateStaff float64) float64 {
	dock := math.Floor(labor.DockOfficeFtePerShift * labor.ShiftsPerDay * labor.DriverProcessTimeShare * labor.TimeSavedShare)
	gate := math.Floor(gateStaff * labor.GuardAutomationShare)
	return math.Max(0, dock+gate)
}

func laborSavings(in RoiV2Input) float64 {
	fteCost := FteAnnualCost(in.Costs)
	total := 0.0
	for _, id := range Tiers() {
		tier, ok := in.Tiers[id]
		if !ok || tier.Count <= 0 {
			continue
		}
		labor, ok := in.Labor[id]
		if !ok {
			continue
		}
		total += SavedFtePerFacility(labor, in.Costs.GateStaffPerFacility) * fteCost * float64(tier.Count)
	}
	return total
}

func paperlessSavings(p PaperAssumptions, shipments float64) float64 {
	pagesPerShipment := p.PagesPerBol*p.BolsPerShipment + p.OtherPagesPerShipment
	pagesPerYear := pagesPerShipment * shipments * p.OutboundShare
	return pagesPerYear * (p.PrintCostPerPage + p.StorageCostPerPage) * p.Phase1SavedShare
}

func detentionSavings(d DetentionAssumptions, costs CostAssumptions, shipments float64) float64 {
	billable := shipments * d.IncidenceShare * d.AvgBillableHours * costs.DetentionCostPerHour
	return billable * d.AtFacilitiesShare * d.RecoveryShare
}
