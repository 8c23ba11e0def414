package economics

import (
	"fmt"
	"math"

	"github.com/iwvelando/yard-economics/pkg/constants"
	"github.com/iwvelando/yard-economics/pkg/mathutil"
	"github.com/iwvelando/yard-economics/pkg/network"
)

// CalcRoiV2 runs the full pipeline: validation, savings, network effect,
// value-stream attribution and the financial projection.
func CalcRoiV2(in RoiV2Input) (RoiV2Result, error) {
	if err := in.Validate(); err != nil {
		return RoiV2Result{}, err
	}

	base := ComputeBaseSavings(in)
	if err := checkVolumes(base); err != nil {
		return RoiV2Result{}, err
	}
	net := network.MetcalfeInspiredMultiplier(base.TotalFacilities, in.Network)
	bonus := float64(base.Total * (net.Multiplier - 1))
	if err := checkFinite("networkBonusSavings", bonus); err != nil {
		return RoiV2Result{}, err
	}
	breakdown := network.Attribute(base.TotalFacilities, base.TotalShipmentsPerYear, base.Total, bonus, net.Multiplier)
	if err := reconcile(breakdown, bonus); err != nil {
		return RoiV2Result{}, err
	}

	result, err := Project(base, net, breakdown, in)
	if err != nil {
		return RoiV2Result{}, err
	}
	if err := checkResult(result); err != nil {
		return RoiV2Result{}, err
	}
	return result, nil
}

// CalcQuick normalizes a quick input and runs the pipeline.
func CalcQuick(q QuickInput) (RoiV2Result, error) {
	in, err := RoiV2InputsFromQuickMode(q)
	if err != nil {
		return RoiV2Result{}, err
	}
	return CalcRoiV2(in)
}

func reconcile(b network.Breakdown, bonus float64) error {
	sum := b.StreamTotal()
	if !mathutil.WithinTolerance(sum, bonus, constants.ReconciliationTolerance*math.Max(1, math.Abs(bonus))) {
		return &InvariantViolationError{
			Invariant: "network streams reconcile to bonus",
			Detail:    fmt.Sprintf("streams sum to %v, bonus is %v", sum, bonus),
		}
	}
	return nil
}

func checkResult(r RoiV2Result) error {
	values := map[string]float64{
		"baseSavings":        r.BaseSavings,
		"networkMultiplier":  r.NetworkMultiplier,
		"totalAnnualSavings": r.TotalAnnualSavings,
		"yearOneRoiPercent":  r.YearOneRoiPercent,
		"paybackMonths":      r.PaybackMonths,
		"fiveYearValue":      r.FiveYearValue,
	}
	for name, v := range values {
		if !mathutil.IsFinite(v) {
			return &InvariantViolationError{Invariant: "finite outputs", Detail: name + " is not finite"}
		}
	}
	if r.NetworkMultiplier < 1 {
		return &InvariantViolationError{
			Invariant: "multiplier >= 1",
			Detail:    fmt.Sprintf("multiplier is %v", r.NetworkMultiplier),
		}
	}
	if r.TotalAnnualSavings != r.BaseSavings+r.NetworkBonusSavings {
		return &InvariantViolationError{
			Invariant: "total = base + bonus",
			Detail:    fmt.Sprintf("%v != %v + %v", r.TotalAnnualSavings, r.BaseSavings, r.NetworkBonusSavings),
		}
	}
	return nil
}
