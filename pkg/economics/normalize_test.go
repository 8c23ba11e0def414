package economics

import (
	"errors"
	"math"
	"testing"
)

func expectedQuick() QuickInput {
	return QuickInput{
		Facilities:              10,
		TrucksPerDayPerFacility: 150,
		AvgDwellTimeMinutes:     55,
		DetentionCostPerHour:    75,
		LaborCostPerHour:        28,
		GateStaffPerFacility:    4,
	}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestRoiV2InputsFromQuickModeDefaults(t *testing.T) {
	in, err := RoiV2InputsFromQuickMode(expectedQuick())
	if err != nil {
		t.Fatalf("RoiV2InputsFromQuickMode() error = %v", err)
	}

	if got := in.TotalFacilities(); got != 10 {
		t.Errorf("TotalFacilities() = %d, expected 10", got)
	}
	for _, id := range Tiers() {
		if in.Tiers[id].ShipmentsPerDay != 150 {
			t.Errorf("tier %s shipments/day = %v, expected 150", id, in.Tiers[id].ShipmentsPerDay)
		}
		if in.Tiers[id].ID != id {
			t.Errorf("tier %s carries id %s", id, in.Tiers[id].ID)
		}
	}
	if in.ContractedFacilities != 10 {
		t.Errorf("ContractedFacilities = %d, expected 10", in.ContractedFacilities)
	}
	if in.YearOneRampShare != DefaultYearOneRampShare {
		t.Errorf("YearOneRampShare = %v, expected %v", in.YearOneRampShare, DefaultYearOneRampShare)
	}
	if in.Throughput.ReduceCheckInMinutes != 5 || in.Throughput.ReduceCheckOutMinutes != 5 {
		t.Errorf("check reductions = %v/%v, expected 5/5", in.Throughput.ReduceCheckInMinutes, in.Throughput.ReduceCheckOutMinutes)
	}
	if in.Network.Beta != 0.004 || in.Network.Tau != 45 {
		t.Errorf("network params = %+v, expected base case", in.Network)
	}
	if in.Costs.DetentionCostPerHour != 75 || in.Costs.LaborCostPerHour != 28 || in.Costs.GateStaffPerFacility != 4 {
		t.Errorf("costs not carried through: %+v", in.Costs)
	}
}

func TestRoiV2InputsFromQuickModeShortDwellCapsReductions(t *testing.T) {
	q := expectedQuick()
	q.AvgDwellTimeMinutes = 12
	in, err := RoiV2InputsFromQuickMode(q)
	if err != nil {
		t.Fatalf("RoiV2InputsFromQuickMode() error = %v", err)
	}
	if in.Throughput.ReduceCheckInMinutes != 3 || in.Throughput.ReduceCheckOutMinutes != 3 {
		t.Errorf("check reductions = %v/%v, expected 3/3", in.Throughput.ReduceCheckInMinutes, in.Throughput.ReduceCheckOutMinutes)
	}
}

func TestRoiV2InputsFromQuickModeOverrides(t *testing.T) {
	q := expectedQuick()
	q.ContractedFacilities = intPtr(4)
	q.YearOneRampShare = floatPtr(0.5)
	q.DwellReductionMinutes = floatPtr(20)
	q.TierShipmentsPerDay = map[TierID]float64{TierXL: 400}

	in, err := RoiV2InputsFromQuickMode(q)
	if err != nil {
		t.Fatalf("RoiV2InputsFromQuickMode() error = %v", err)
	}
	if in.ContractedFacilities != 4 {
		t.Errorf("ContractedFacilities = %d, expected 4", in.ContractedFacilities)
	}
	if in.YearOneRampShare != 0.5 {
		t.Errorf("YearOneRampShare = %v, expected 0.5", in.YearOneRampShare)
	}
	if in.Throughput.ReduceCheckInMinutes+in.Throughput.ReduceCheckOutMinutes != 20 {
		t.Errorf("total reduction = %v, expected 20", in.Throughput.ReduceCheckInMinutes+in.Throughput.ReduceCheckOutMinutes)
	}
	if in.Tiers[TierXL].ShipmentsPerDay != 400 {
		t.Errorf("XL shipments/day = %v, expected 400", in.Tiers[TierXL].ShipmentsPerDay)
	}
	if in.Tiers[TierS].ShipmentsPerDay != 150 {
		t.Errorf("S shipments/day = %v, expected 150", in.Tiers[TierS].ShipmentsPerDay)
	}
}

func TestRoiV2InputsFromQuickModeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuickInput)
		field  string
	}{
		{"Zero facilities", func(q *QuickInput) { q.Facilities = 0 }, "facilities"},
		{"Negative facilities", func(q *QuickInput) { q.Facilities = -5 }, "facilities"},
		{"Zero trucks", func(q *QuickInput) { q.TrucksPerDayPerFacility = 0 }, "trucksPerDayPerFacility"},
		{"NaN dwell", func(q *QuickInput) { q.AvgDwellTimeMinutes = math.NaN() }, "avgDwellTimeMinutes"},
		{"Negative labor rate", func(q *QuickInput) { q.LaborCostPerHour = -1 }, "laborCostPerHour"},
		{"Infinite detention rate", func(q *QuickInput) { q.DetentionCostPerHour = math.Inf(1) }, "detentionCostPerHour"},
		{"Ramp above one", func(q *QuickInput) { q.YearOneRampShare = floatPtr(1.2) }, "yearOneRampShare"},
		{"Ramp below zero", func(q *QuickInput) { q.YearOneRampShare = floatPtr(-0.1) }, "yearOneRampShare"},
		{"Reduction swallows dwell", func(q *QuickInput) { q.DwellReductionMinutes = floatPtr(55) }, "dwellReductionMinutes"},
		{"Unknown tier override", func(q *QuickInput) { q.TierShipmentsPerDay = map[TierID]float64{"XXL": 10} }, "tierShipmentsPerDay"},
		{"Negative contracted", func(q *QuickInput) { q.ContractedFacilities = intPtr(-1) }, "contractedFacilities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := expectedQuick()
			tt.mutate(&q)

			in, err := RoiV2InputsFromQuickMode(q)
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InvalidInputError, got %v", err)
			}
			if inputErr.Field != tt.field {
				t.Errorf("error field = %q, expected %q", inputErr.Field, tt.field)
			}
			if in.Tiers != nil || in.TotalFacilities() != 0 {
				t.Errorf("expected no partial result, got %+v", in)
			}
		})
	}
}

func TestRoiV2InputsFromQuickModeIsDeterministic(t *testing.T) {
	a, errA := RoiV2InputsFromQuickMode(expectedQuick())
	b, errB := RoiV2InputsFromQuickMode(expectedQuick())
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	for _, id := range Tiers() {
		if a.Tiers[id] != b.Tiers[id] || a.Labor[id] != b.Labor[id] {
			t.Errorf("tier %s differs between identical calls", id)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	in, err := RoiV2InputsFromQuickMode(expectedQuick())
	if err != nil {
		t.Fatalf("RoiV2InputsFromQuickMode() error = %v", err)
	}
	clone := in.Clone()
	tier := clone.Tiers[TierM]
	tier.Count = 999
	clone.Tiers[TierM] = tier
	labor := clone.Labor[TierM]
	labor.ShiftsPerDay = 9
	clone.Labor[TierM] = labor

	if in.Tiers[TierM].Count == 999 || in.Labor[TierM].ShiftsPerDay == 9 {
		t.Error("mutating a clone changed the original input")
	}
}
