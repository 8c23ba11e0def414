package economics

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/yard-economics/pkg/network"
)

// Golden projections for the locked v2 formulas. Update only together with a
// model version bump.
func TestCalcRoiV2Golden(t *testing.T) {
	tests := []struct {
		scenario, mode string
		facilities     int
		shipments      float64
		base           float64
		multiplier     float64
		bonus          float64
		total          float64
		implementation float64
		subscription   float64
		yearOneNet     float64
		roiPercent     float64
		payback        float64
		fiveYear       float64
	}{
		{
			scenario: ScenarioPilot, mode: ModeExpected, facilities: 1, shipments: 39000,
			base: 619557.5, multiplier: 1, bonus: 0, total: 619557.5,
			implementation: 2500, subscription: 8000,
			yearOneNet: 423190.25, roiPercent: 4030.3833333333337,
			payback: 0.29052993467111604, fiveYear: 3181702.111429201,
		},
		{
			scenario: ScenarioRegional, mode: ModeExpected, facilities: 10, shipments: 390000,
			base: 6375575, multiplier: 1.0007970503883328, bonus: 5081.654529594741, total: 6380656.654529597,
			implementation: 25000, subscription: 80000,
			yearOneNet: 4361459.658170718, roiPercent: 4153.7711030197315,
			payback: 0.2821026263373988, fiveYear: 32780193.477343265,
		},
		{
			scenario: ScenarioEnterprise, mode: ModeUpside, facilities: 50, shipments: 2340000,
			base: 34454550, multiplier: 1.12419033071451, bonus: 4278921.959119622, total: 38733471.95911962,
			implementation: 125000, subscription: 400000,
			yearOneNet: 26588430.37138373, roiPercent: 5064.462927882615,
			payback: 0.2323571718409042, fiveYear: 199445543.61149237,
		},
		{
			scenario: ScenarioPrimo, mode: ModeConservative, facilities: 260, shipments: 8112000,
			base: 143048360, multiplier: 3.2152082702284797, bonus: 316881910.11462086, total: 459930270.11462086,
			implementation: 650000, subscription: 2080000,
			yearOneNet: 319221189.0802346, roiPercent: 11693.083849092842,
			payback: 0.10175455507274354, fiveYear: 2382445596.476135,
		},
	}

	for _, tt := range tests {
		t.Run(tt.scenario+"/"+tt.mode, func(t *testing.T) {
			in, err := GetRoiV2InputsForPreset(tt.scenario, tt.mode)
			if err != nil {
				t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
			}
			r, err := CalcRoiV2(in)
			if err != nil {
				t.Fatalf("CalcRoiV2() error = %v", err)
			}

			if r.TotalFacilities != tt.facilities {
				t.Errorf("TotalFacilities = %d, expected %d", r.TotalFacilities, tt.facilities)
			}
			if r.ModelVersion != "v2" {
				t.Errorf("ModelVersion = %q, expected v2", r.ModelVersion)
			}
			assertClose(t, "TotalShipmentsPerYear", r.TotalShipmentsPerYear, tt.shipments)
			assertClose(t, "BaseSavings", r.BaseSavings, tt.base)
			assertClose(t, "NetworkMultiplier", r.NetworkMultiplier, tt.multiplier)
			assertClose(t, "NetworkBonusSavings", r.NetworkBonusSavings, tt.bonus)
			assertClose(t, "TotalAnnualSavings", r.TotalAnnualSavings, tt.total)
			assertClose(t, "ImplementationCost", r.ImplementationCost, tt.implementation)
			assertClose(t, "AnnualSubscription", r.AnnualSubscription, tt.subscription)
			assertClose(t, "YearOneNetGain", r.YearOneNetGain, tt.yearOneNet)
			assertClose(t, "YearOneRoiPercent", r.YearOneRoiPercent, tt.roiPercent)
			assertClose(t, "PaybackMonths", r.PaybackMonths, tt.payback)
			assertClose(t, "FiveYearValue", r.FiveYearValue, tt.fiveYear)
		})
	}
}

func TestCalcRoiV2Invariants(t *testing.T) {
	for _, scenario := range ScenarioPresets() {
		for _, mode := range ModePresets() {
			in, err := GetRoiV2InputsForPreset(scenario.ID, mode.ID)
			if err != nil {
				t.Fatalf("%s/%s: %v", scenario.ID, mode.ID, err)
			}
			r, err := CalcRoiV2(in)
			if err != nil {
				t.Fatalf("%s/%s: %v", scenario.ID, mode.ID, err)
			}

			assertClose(t, "total", r.TotalAnnualSavings, r.BaseSavings+r.NetworkBonusSavings)
			assertClose(t, "bonus", r.NetworkBonusSavings, r.BaseSavings*(r.NetworkMultiplier-1))

			streams := r.NetworkEffectBreakdown.StreamTotal()
			if math.Abs(streams-r.NetworkBonusSavings) > 1e-6*math.Max(1, r.NetworkBonusSavings) {
				t.Errorf("%s/%s: streams %v do not reconcile to bonus %v", scenario.ID, mode.ID, streams, r.NetworkBonusSavings)
			}
			if r.NetworkEffectBreakdown.EffectiveMultiplier != r.NetworkMultiplier {
				t.Errorf("%s/%s: breakdown multiplier %v != %v", scenario.ID, mode.ID, r.NetworkEffectBreakdown.EffectiveMultiplier, r.NetworkMultiplier)
			}
			if r.NetworkMultiplier < 1 {
				t.Errorf("%s/%s: multiplier %v < 1", scenario.ID, mode.ID, r.NetworkMultiplier)
			}
		}
	}
}

func TestCalcRoiV2FullNetwork(t *testing.T) {
	in, err := GetRoiV2InputsForPreset(ScenarioPrimo, ModeExpected)
	if err != nil {
		t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
	}
	r, err := CalcRoiV2(in)
	if err != nil {
		t.Fatalf("CalcRoiV2() error = %v", err)
	}

	if got := network.MetcalfeInspiredMultiplier(r.TotalFacilities, in.Network).Connections; got != 33670 {
		t.Errorf("connections = %v, expected 33670", got)
	}
	if r.TotalAnnualSavings <= r.BaseSavings {
		t.Errorf("total %v should exceed base %v for a 260-site network", r.TotalAnnualSavings, r.BaseSavings)
	}
	assertClose(t, "NetworkMultiplier", r.NetworkMultiplier, 3.9836241413938547)
}

func TestCalcRoiV2IsIdempotent(t *testing.T) {
	in, err := GetRoiV2InputsForPreset(ScenarioEnterprise, ModeExpected)
	if err != nil {
		t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
	}
	first, err := CalcRoiV2(in)
	if err != nil {
		t.Fatalf("CalcRoiV2() error = %v", err)
	}
	second, err := CalcRoiV2(in)
	if err != nil {
		t.Fatalf("CalcRoiV2() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated calls differ (-first +second):\n%s", diff)
	}
}

func TestCalcRoiV2DoesNotMutateInput(t *testing.T) {
	in, err := GetRoiV2InputsForPreset(ScenarioRegional, ModeExpected)
	if err != nil {
		t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
	}
	snapshot := in.Clone()
	if _, err := CalcRoiV2(in); err != nil {
		t.Fatalf("CalcRoiV2() error = %v", err)
	}
	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

func TestCalcRoiV2RampNeverScalesCosts(t *testing.T) {
	in, err := GetRoiV2InputsForPreset(ScenarioRegional, ModeExpected)
	if err != nil {
		t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
	}

	var previous *RoiV2Result
	for _, ramp := range []float64{0, 0.25, 0.7, 1} {
		in.YearOneRampShare = ramp
		r, err := CalcRoiV2(in)
		if err != nil {
			t.Fatalf("ramp %v: %v", ramp, err)
		}
		assertClose(t, "YearOneGrossSavings", r.YearOneGrossSavings, r.TotalAnnualSavings*ramp)
		if previous != nil {
			if r.ImplementationCost != previous.ImplementationCost || r.AnnualSubscription != previous.AnnualSubscription {
				t.Errorf("ramp %v changed costs: %v/%v vs %v/%v", ramp,
					r.ImplementationCost, r.AnnualSubscription, previous.ImplementationCost, previous.AnnualSubscription)
			}
		}
		current := r
		previous = &current
	}
}

func TestCalcRoiV2ZeroRampNeverPaysBack(t *testing.T) {
	in, err := GetRoiV2InputsForPreset(ScenarioPilot, ModeExpected)
	if err != nil {
		t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
	}
	in.YearOneRampShare = 0
	r, err := CalcRoiV2(in)
	if err != nil {
		t.Fatalf("CalcRoiV2() error = %v", err)
	}
	if r.PaybackMonths != NoPayback || r.HasPayback() {
		t.Errorf("PaybackMonths = %v, expected NoPayback", r.PaybackMonths)
	}
	assertClose(t, "YearOneNetGain", r.YearOneNetGain, -10500)
	assertClose(t, "YearOneRoiPercent", r.YearOneRoiPercent, -100)
}

func TestCalcRoiV2ContractedFacilitiesDriveCosts(t *testing.T) {
	in, err := GetRoiV2InputsForPreset(ScenarioRegional, ModeExpected)
	if err != nil {
		t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
	}
	in.ContractedFacilities = 3
	r, err := CalcRoiV2(in)
	if err != nil {
		t.Fatalf("CalcRoiV2() error = %v", err)
	}
	assertClose(t, "ImplementationCost", r.ImplementationCost, 7500)
	assertClose(t, "AnnualSubscription", r.AnnualSubscription, 24000)
	if r.TotalFacilities != 10 {
		t.Errorf("TotalFacilities = %d, expected the modeled 10", r.TotalFacilities)
	}
}

func TestCalcRoiV2ZeroCostBasis(t *testing.T) {
	in, err := GetRoiV2InputsForPreset(ScenarioRegional, ModeExpected)
	if err != nil {
		t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
	}
	in.ContractedFacilities = 0

	_, err = CalcRoiV2(in)
	var divErr *DivisionByZeroError
	if !errors.As(err, &divErr) {
		t.Fatalf("expected *DivisionByZeroError, got %v", err)
	}
}

func TestCalcRoiV2RejectsInvalidDeepInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RoiV2Input)
		field  string
	}{
		{"Ramp above one", func(in *RoiV2Input) { in.YearOneRampShare = 1.01 }, "yearOneRampShare"},
		{"Reductions exceed gate time", func(in *RoiV2Input) { in.Throughput.ReduceCheckInMinutes = 60 }, "throughput.reduceCheckInMinutes+reduceCheckOutMinutes"},
		{"Negative beta", func(in *RoiV2Input) { in.Network.Beta = -0.1 }, "network.beta"},
		{"Zero tau", func(in *RoiV2Input) { in.Network.Tau = 0 }, "network.tau"},
		{"Discount of minus one", func(in *RoiV2Input) { in.Finance.DiscountRate = -1 }, "discountRate"},
		{"Share above one", func(in *RoiV2Input) { in.Detention.RecoveryShare = 1.5 }, "detention.recoveryShare"},
		{"No facilities", func(in *RoiV2Input) {
			for id, tier := range in.Tiers {
				tier.Count = 0
				in.Tiers[id] = tier
			}
		}, "tiers"},
		{"Negative tier count", func(in *RoiV2Input) {
			tier := in.Tiers[TierS]
			tier.Count = -1
			in.Tiers[TierS] = tier
		}, "tiers.S.count"},
		{"Shipment volume overflows", func(in *RoiV2Input) {
			tier := in.Tiers[TierM]
			tier.ShipmentsPerDay = 1e306
			in.Tiers[TierM] = tier
		}, "totalShipmentsPerYear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := GetRoiV2InputsForPreset(ScenarioRegional, ModeExpected)
			if err != nil {
				t.Fatalf("GetRoiV2InputsForPreset() error = %v", err)
			}
			tt.mutate(&in)

			_, err = CalcRoiV2(in)
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InvalidInputError, got %v", err)
			}
			if inputErr.Field != tt.field {
				t.Errorf("error field = %q, expected %q", inputErr.Field, tt.field)
			}
		})
	}
}

func TestCalcQuickRejectsOverflowingVolume(t *testing.T) {
	q := QuickInput{
		Facilities:              10,
		TrucksPerDayPerFacility: 1e306,
		AvgDwellTimeMinutes:     120,
		DetentionCostPerHour:    75,
		LaborCostPerHour:        25,
		GateStaffPerFacility:    2,
	}
	_, err := CalcQuick(q)
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InvalidInputError, got %v", err)
	}
	var invariantErr *InvariantViolationError
	if errors.As(err, &invariantErr) {
		t.Errorf("overflowing input must not surface as an invariant violation: %v", err)
	}
}

func TestValidateNetworkParams(t *testing.T) {
	tests := []struct {
		name   string
		params network.Params
		field  string
	}{
		{name: "Defaults", params: network.DefaultParams()},
		{name: "Zero beta", params: network.Params{Beta: 0, Tau: 45}},
		{name: "Negative beta", params: network.Params{Beta: -5, Tau: 45}, field: "network.beta"},
		{name: "NaN beta", params: network.Params{Beta: math.NaN(), Tau: 45}, field: "network.beta"},
		{name: "Infinite beta", params: network.Params{Beta: math.Inf(1), Tau: 45}, field: "network.beta"},
		{name: "Zero tau", params: network.Params{Beta: 0.004, Tau: 0}, field: "network.tau"},
		{name: "NaN tau", params: network.Params{Beta: 0.004, Tau: math.NaN()}, field: "network.tau"},
		{name: "Infinite tau", params: network.Params{Beta: 0.004, Tau: math.Inf(1)}, field: "network.tau"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNetworkParams(tt.params)
			if tt.field == "" {
				if err != nil {
					t.Errorf("ValidateNetworkParams() error = %v", err)
				}
				return
			}
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InvalidInputError, got %v", err)
			}
			if inputErr.Field != tt.field {
				t.Errorf("error field = %q, expected %q", inputErr.Field, tt.field)
			}
		})
	}
}

func TestCalcQuickMatchesTwoStep(t *testing.T) {
	q := expectedQuick()
	direct, err := CalcQuick(q)
	if err != nil {
		t.Fatalf("CalcQuick() error = %v", err)
	}
	in, err := RoiV2InputsFromQuickMode(q)
	if err != nil {
		t.Fatalf("RoiV2InputsFromQuickMode() error = %v", err)
	}
	twoStep, err := CalcRoiV2(in)
	if err != nil {
		t.Fatalf("CalcRoiV2() error = %v", err)
	}
	if diff := cmp.Diff(direct, twoStep); diff != "" {
		t.Errorf("quick and two-step results differ:\n%s", diff)
	}
}

func TestFiveYearValueWithDiscounting(t *testing.T) {
	got := FiveYearValue(100000, 10000, 5000, FinanceAssumptions{GrowthRate: 0, DiscountRate: 0})
	assertClose(t, "undiscounted", got, 5*90000-5000)

	discounted := FiveYearValue(100000, 10000, 5000, FinanceAssumptions{GrowthRate: 0, DiscountRate: 0.1})
	expected := 90000*(1+1/1.1+1/1.21+1/1.331+1/1.4641) - 5000
	assertClose(t, "discounted", discounted, expected)
}

func TestPaybackMonths(t *testing.T) {
	assertClose(t, "payback", PaybackMonths(120000, 240000), 6)
	if PaybackMonths(1000, 0) != NoPayback {
		t.Error("zero savings should never pay back")
	}
	if PaybackMonths(1000, -5) != NoPayback {
		t.Error("negative savings should never pay back")
	}
}
