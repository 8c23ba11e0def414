package economics

import (
	"math"
	"testing"
)

// assertClose fails the test if got and want differ by more than a relative
// tolerance of 1e-9.
func assertClose(t *testing.T, label string, got, want float64) {
	t.Helper()
	scale := math.Max(1, math.Max(math.Abs(got), math.Abs(want)))
	if math.Abs(got-want) > 1e-9*scale {
		t.Errorf("%s = %v, expected %v", label, got, want)
	}
}

func TestDistributeFacilitiesPreservesSum(t *testing.T) {
	for n := 1; n <= 1000; n++ {
		counts := DistributeFacilities(n)
		sum := 0
		for _, id := range Tiers() {
			if counts[id] < 0 {
				t.Fatalf("n=%d: tier %s has negative count %d", n, id, counts[id])
			}
			sum += counts[id]
		}
		if sum != n {
			t.Fatalf("n=%d: tier counts sum to %d", n, sum)
		}
	}
}

func TestDistributeFacilities(t *testing.T) {
	tests := []struct {
		name       string
		facilities int
		expected   map[TierID]int
	}{
		{"Single site lands in M", 1, map[TierID]int{TierXL: 0, TierL: 0, TierM: 1, TierS: 0}},
		{"Exact split", 10, map[TierID]int{TierXL: 1, TierL: 2, TierM: 4, TierS: 3}},
		{"Remainder to M", 7, map[TierID]int{TierXL: 0, TierL: 1, TierM: 4, TierS: 2}},
		{"Full network", 260, map[TierID]int{TierXL: 26, TierL: 52, TierM: 104, TierS: 78}},
		{"Zero facilities", 0, map[TierID]int{TierXL: 0, TierL: 0, TierM: 0, TierS: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := DistributeFacilities(tt.facilities)
			for _, id := range Tiers() {
				if counts[id] != tt.expected[id] {
					t.Errorf("tier %s = %d, expected %d", id, counts[id], tt.expected[id])
				}
			}
		})
	}
}

func TestTierWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, id := range Tiers() {
		sum += TierWeight(id)
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("tier weights sum to %v, expected 1", sum)
	}
}
