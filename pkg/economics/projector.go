package economics

import (
	"math"

	"github.com/iwvelando/yard-economics/pkg/constants"
	"github.com/iwvelando/yard-economics/pkg/mathutil"
	"github.com/iwvelando/yard-economics/pkg/network"
)

// NoPayback marks a projection whose savings never recover the cost basis.
const NoPayback = -1.0

// Project turns base savings and the network bonus into the financial view.
// Implementation and subscription cost scale with contracted facilities and
// are never ramped.
func Project(base BaseSavings, net network.Result, breakdown network.Breakdown, in RoiV2Input) (RoiV2Result, error) {
	// Rounded before the add so total == base + bonus holds exactly.
	bonus := float64(base.Total * (net.Multiplier - 1))
	total := base.Total + bonus

	contracted := float64(in.ContractedFacilities)
	implementation := in.Commercial.ImplementationBaseCost + contracted*in.Commercial.ImplementationCostPerFacility
	subscription := contracted * in.Commercial.AnnualSubscriptionPerFacility
	costBasis := implementation + subscription
	if mathutil.IsZero(costBasis) {
		return RoiV2Result{}, &DivisionByZeroError{Op: "yearOneRoiPercent: implementation plus subscription cost is zero"}
	}

	gross := total * in.YearOneRampShare
	net1 := gross - implementation - subscription

	result := RoiV2Result{
		ModelVersion:             constants.ModelVersion,
		TotalFacilities:          base.TotalFacilities,
		TotalShipmentsPerYear:    base.TotalShipmentsPerYear,
		OutboundShipmentsPerYear: base.OutboundShipmentsPerYear,
		AnnualLaborSavings:       base.AnnualLaborSavings,
		PaperlessSavings:         base.PaperlessSavings,
		AnnualDetentionSavings:   base.AnnualDetentionSavings,
		ThroughputValue:          base.ThroughputValue,
		ShipperOfChoiceValue:     base.ShipperOfChoiceValue,
		EnterpriseAddOns:         base.EnterpriseAddOns,
		BaseSavings:              base.Total,
		NetworkMultiplier:        net.Multiplier,
		NetworkBonusSavings:      bonus,
		NetworkEffectBreakdown:   breakdown,
		TotalAnnualSavings:       total,
		ImplementationCost:       implementation,
		AnnualSubscription:       subscription,
		YearOneGrossSavings:      gross,
		YearOneNetGain:           net1,
		YearOneRoiPercent:        net1 / costBasis * constants.PercentageMultiplier,
		PaybackMonths:            PaybackMonths(costBasis, gross),
		FiveYearValue:            FiveYearValue(total, subscription, implementation, in.Finance),
	}
	return result, nil
}

// PaybackMonths is the cost basis over the monthly year-one savings rate.
// A non-positive savings rate never pays back.
func PaybackMonths(costBasis, yearOneGross float64) float64 {
	monthly := yearOneGross / constants.MonthsPerYear
	if monthly <= 0 {
		return NoPayback
	}
	return math.Max(0, costBasis/monthly)
}

// FiveYearValue sums five growth-compounded, discounted years of savings net
// of subscription, less the one-time implementation cost.
func FiveYearValue(totalAnnualSavings, subscription, implementation float64, finance FinanceAssumptions) float64 {
	value := 0.0
	for year := 0; year < constants.ProjectionYears; year++ {
		cashflow := totalAnnualSavings*math.Pow(1+finance.GrowthRate, float64(year)) - subscription
		value += cashflow / math.Pow(1+finance.DiscountRate, float64(year))
	}
	return value - implementation
}
