package economics

import (
	"math"

	"github.com/iwvelando/yard-economics/pkg/constants"
)

// ProfitMethod selects how an incremental truckload is turned into profit.
type ProfitMethod string

// Profit methods
const (
	ProfitContributionMargin ProfitMethod = "contribution_margin"
	ProfitAvoidedOutsourcing ProfitMethod = "avoided_outsourcing"
)

// ProfitAssumptions carry the per-truckload economics of the chosen method.
type ProfitAssumptions struct {
	Method                           ProfitMethod `json:"method"`
	ContributionMarginPerTruckload   float64      `json:"contributionMarginPerTruckload"`
	OutsourcedCostPerTruckload       float64      `json:"outsourcedCostPerTruckload"`
	InternalVariableCostPerTruckload float64      `json:"internalVariableCostPerTruckload"`
}

// PerTruckloadProfit derives the truckload value under the chosen method.
func (p ProfitAssumptions) PerTruckloadProfit() (float64, error) {
	switch p.Method {
	case ProfitContributionMargin:
		if err := checkNonNegative("profit.contributionMarginPerTruckload", p.ContributionMarginPerTruckload); err != nil {
			return 0, err
		}
		return p.ContributionMarginPerTruckload, nil
	case ProfitAvoidedOutsourcing:
		if err := checkAll(
			checkNonNegative("profit.outsourcedCostPerTruckload", p.OutsourcedCostPerTruckload),
			checkNonNegative("profit.internalVariableCostPerTruckload", p.InternalVariableCostPerTruckload),
		); err != nil {
			return 0, err
		}
		return math.Max(0, p.OutsourcedCostPerTruckload-p.InternalVariableCostPerTruckload), nil
	default:
		return 0, invalid("profit.method", p.Method, "must be contribution_margin or avoided_outsourcing")
	}
}

// ScenarioInput is the input of CalcScenario.
type ScenarioInput struct {
	Roi          RoiV2Input        `json:"roi"`
	Profit       ProfitAssumptions `json:"profit"`
	DiscountRate float64           `json:"discountRate"`
	GrowthRate   float64           `json:"growthRate"`
}

// Capacity is the cycle-time view of the throughput component.
type Capacity struct {
	BaselineCycleTimeMinutes             float64 `json:"baselineCycleTimeMinutes"`
	MinutesSavedTotal                    float64 `json:"minutesSavedTotal"`
	TheoreticalThroughputGain            float64 `json:"theoreticalThroughputGain"`
	RealizedGain                         float64 `json:"realizedGain"`
	CurrentOutboundTruckloadsPerYear     float64 `json:"currentOutboundTruckloadsPerYear"`
	IncrementalOutboundTruckloadsPerYear float64 `json:"incrementalOutboundTruckloadsPerYear"`
	AnnualProfitImpact                   float64 `json:"annualProfitImpact"`
	YearOneIncrementalTruckloads         float64 `json:"yearOneIncrementalTruckloads"`
	YearOneProfitImpact                  float64 `json:"yearOneProfitImpact"`
}

// Finance is the time-value view of a scenario.
type Finance struct {
	YearOneCashflow    float64 `json:"yearOneCashflow"`
	FiveYearNPV        float64 `json:"fiveYearNPV"`
	CostOfDelay90Days  float64 `json:"costOfDelay90Days"`
	CostOfDelay30Days  float64 `json:"costOfDelay30Days"`
	SavingsPerFacility float64 `json:"savingsPerFacility"`
}

// Scenario wraps a projection with its profit basis and finance view.
type Scenario struct {
	Roi                RoiV2Result  `json:"roi"`
	ProfitMethod       ProfitMethod `json:"profitMethod"`
	PerTruckloadProfit float64      `json:"perTruckloadProfit"`
	HardSavingsAnnual  float64      `json:"hardSavingsAnnual"`
	Capacity           Capacity     `json:"capacity"`
	Finance            Finance      `json:"finance"`
	Warnings           []Warning    `json:"warnings"`
}

// CalcScenario re-derives the throughput margin from the profit method on a
// copy of the input, runs the engine and adds the capacity and finance views.
// The scenario's rates replace the input's finance assumptions so the five-year
// value and the NPV share one basis.
func CalcScenario(s ScenarioInput) (Scenario, error) {
	perTruckload, err := s.Profit.PerTruckloadProfit()
	if err != nil {
		return Scenario{}, err
	}
	if err := validateRates(s.DiscountRate, s.GrowthRate); err != nil {
		return Scenario{}, err
	}

	in := s.Roi.Clone()
	in.Throughput.IncrementalMarginPerTruck = perTruckload
	in.Finance.DiscountRate = s.DiscountRate
	in.Finance.GrowthRate = s.GrowthRate

	roi, err := CalcRoiV2(in)
	if err != nil {
		return Scenario{}, err
	}

	t := in.Throughput
	baseline := math.Max(minGateMinutes, t.AvgGateInToOutMinutes)
	saved := t.ReduceCheckInMinutes + t.ReduceCheckOutMinutes
	improved := math.Max(minGateMinutes, baseline-saved)
	theoretical := math.Max(0, baseline/improved-1)
	realized := theoretical * t.RealizedShare
	outbound := roi.TotalShipmentsPerYear * t.OutboundShare
	incremental := outbound * realized
	yearOneTruckloads := incremental * in.YearOneRampShare

	capacity := Capacity{
		BaselineCycleTimeMinutes:             baseline,
		MinutesSavedTotal:                    saved,
		TheoreticalThroughputGain:            theoretical,
		RealizedGain:                         realized,
		CurrentOutboundTruckloadsPerYear:     outbound,
		IncrementalOutboundTruckloadsPerYear: incremental,
		AnnualProfitImpact:                   incremental * perTruckload,
		YearOneIncrementalTruckloads:         yearOneTruckloads,
		YearOneProfitImpact:                  yearOneTruckloads * perTruckload,
	}

	return Scenario{
		Roi:                roi,
		ProfitMethod:       s.Profit.Method,
		PerTruckloadProfit: perTruckload,
		HardSavingsAnnual:  roi.AnnualLaborSavings + roi.PaperlessSavings + roi.AnnualDetentionSavings,
		Capacity:           capacity,
		Finance:            financeView(roi, s.DiscountRate, s.GrowthRate),
		Warnings:           CheckCredibility(in, roi),
	}, nil
}

func financeView(roi RoiV2Result, discountRate, growthRate float64) Finance {
	cashflow := roi.YearOneGrossSavings - roi.AnnualSubscription

	npv := -roi.ImplementationCost + cashflow/(1+discountRate)
	for year := 2; year <= constants.ProjectionYears; year++ {
		annual := roi.TotalAnnualSavings*math.Pow(1+growthRate, float64(year-1)) - roi.AnnualSubscription
		npv += annual / math.Pow(1+discountRate, float64(year))
	}

	delay90 := CostOfDelay(roi.TotalAnnualSavings, constants.CostOfDelayWindowDays)

	perFacility := 0.0
	if roi.TotalFacilities > 0 {
		perFacility = roi.YearOneGrossSavings / float64(roi.TotalFacilities)
	}

	return Finance{
		YearOneCashflow:    cashflow,
		FiveYearNPV:        npv,
		CostOfDelay90Days:  delay90,
		CostOfDelay30Days:  delay90 / 3,
		SavingsPerFacility: perFacility,
	}
}

// CostOfDelay is the savings forgone by deploying days later.
func CostOfDelay(totalAnnualSavings float64, days int) float64 {
	return totalAnnualSavings * float64(days) / constants.DaysPerYear
}
