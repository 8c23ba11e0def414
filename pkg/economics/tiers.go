package economics

// tierWeightPercent holds the calibrated shares of a quick-mode network per tier.
// They are fixed with the model version; changing them changes every
// historical projection.
var tierWeightPercent = map[TierID]int{
	TierXL: 10,
	TierL:  20,
	TierM:  40,
	TierS:  30,
}

// remainderTier absorbs the flooring remainder. It carries the largest weight.
const remainderTier = TierM

// TierWeight returns the calibrated share of the given tier.
func TierWeight(id TierID) float64 {
	return float64(tierWeightPercent[id]) / 100
}

// DistributeFacilities splits facilities across the tiers by flooring each
// weighted share and assigning the remainder to the largest-weight tier, so
// the counts always sum to facilities.
func DistributeFacilities(facilities int) map[TierID]int {
	counts := make(map[TierID]int, len(tierWeightPercent))
	if facilities <= 0 {
		for _, id := range Tiers() {
			counts[id] = 0
		}
		return counts
	}

	assigned := 0
	for _, id := range Tiers() {
		share := facilities * tierWeightPercent[id] / 100
		counts[id] = share
		assigned += share
	}
	counts[remainderTier] += facilities - assigned
	return counts
}

// defaultLaborTiers returns the staffing profile of each facility size.
func defaultLaborTiers() map[TierID]LaborTier {
	return map[TierID]LaborTier{
		TierXL: {DockOfficeFtePerShift: 2, ShiftsPerDay: 4, DriverProcessTimeShare: 0.25, TimeSavedShare: 0.9, GuardAutomationShare: 0.5},
		TierL:  {DockOfficeFtePerShift: 1.5, ShiftsPerDay: 3, DriverProcessTimeShare: 0.25, TimeSavedShare: 0.9, GuardAutomationShare: 0.5},
		TierM:  {DockOfficeFtePerShift: 1.5, ShiftsPerDay: 2, DriverProcessTimeShare: 0.33, TimeSavedShare: 0.9, GuardAutomationShare: 0.5},
		TierS:  {DockOfficeFtePerShift: 1, ShiftsPerDay: 1, DriverProcessTimeShare: 0.5, TimeSavedShare: 0.9, GuardAutomationShare: 0.5},
	}
}
