package network

import "math"

// Stream heuristics. They only decide how the bonus is attributed; the
// attributed amounts are rescaled to the canonical bonus.
const (
	streamMaturityTau = 20.0

	planningValuePerShipment = 1.5
	thirdPartyShipmentShare  = 0.6
	transportCostPerShipment = 150.0
	dataPointsPerConnection  = 30.0
	bufferCostShareOfSavings = 0.05
	onboardingValuePerDay    = 400.0
	annualNetworkGrowth      = 0.08
	errorCostPerShipment     = 0.30
)

// PredictiveIntelligence is the ETA-accuracy value stream.
type PredictiveIntelligence struct {
	EtaAccuracyImprovementPct float64 `json:"etaAccuracyImprovementPct"`
	PlanningSavings           float64 `json:"planningSavings"`
}

// CarrierBenchmarking is the negotiation-leverage value stream.
type CarrierBenchmarking struct {
	DataPointsShared    float64 `json:"dataPointsShared"`
	NegotiationLeverage float64 `json:"negotiationLeverage"`
}

// CoordinationEfficiency is the buffer-reduction value stream.
type CoordinationEfficiency struct {
	VariabilityReductionPct float64 `json:"variabilityReductionPct"`
	BufferSavings           float64 `json:"bufferSavings"`
}

// SharedLearning is the onboarding and error-pattern value stream.
type SharedLearning struct {
	OnboardingAccelerationDays float64 `json:"onboardingAccelerationDays"`
	LearningSavings            float64 `json:"learningSavings"`
}

// Breakdown attributes a network bonus to its four value streams.
type Breakdown struct {
	PredictiveIntelligence PredictiveIntelligence `json:"predictiveIntelligence"`
	CarrierBenchmarking    CarrierBenchmarking    `json:"carrierBenchmarking"`
	CoordinationEfficiency CoordinationEfficiency `json:"coordinationEfficiency"`
	SharedLearning         SharedLearning         `json:"sharedLearning"`
	TotalNetworkBonus      float64                `json:"totalNetworkBonus"`
	EffectiveMultiplier    float64                `json:"effectiveMultiplier"`
}

// StreamTotal sums the four attributed dollar amounts.
func (b Breakdown) StreamTotal() float64 {
	return b.PredictiveIntelligence.PlanningSavings +
		b.CarrierBenchmarking.NegotiationLeverage +
		b.CoordinationEfficiency.BufferSavings +
		b.SharedLearning.LearningSavings
}

// Attribute splits bonus across the value streams for a network of n
// facilities moving shipmentsPerYear shipments with the given base savings.
// Small networks weigh almost nothing on carrier benchmarking and shared
// learning; those streams only open up past roughly ten sites.
func Attribute(n int, shipmentsPerYear, baseSavings, bonus, multiplier float64) Breakdown {
	out := Breakdown{TotalNetworkBonus: bonus, EffectiveMultiplier: multiplier}
	if n <= 1 || bonus <= 0 {
		return out
	}

	nn := float64(n)
	maturity := 1 - math.Exp(-nn/streamMaturityTau)
	shipments := math.Max(0, shipmentsPerYear)

	eta := math.Min(0.25, math.Log(math.Max(1, nn-4)+1)*0.06) * maturity
	planning := planningValuePerShipment * eta * shipments * maturity

	carrierThreshold := math.Max(0, nn-8) / nn
	leverage := math.Min(0.02, 0.003+math.Log(math.Max(1, nn-5)+1)*0.004)
	thirdPartySpend := shipments * thirdPartyShipmentShare * transportCostPerShipment
	negotiation := thirdPartySpend * leverage * carrierThreshold * maturity
	dataPoints := Connections(n) * dataPointsPerConnection * maturity

	variability := math.Min(0.20, math.Log2(math.Max(1, nn-5)+1)*0.04) * maturity
	buffer := math.Max(0, baseSavings) * bufferCostShareOfSavings * variability

	onboardingDays := math.Min(45, math.Log(math.Max(1, nn-3)+1)*12) * maturity
	newSites := math.Ceil(nn * annualNetworkGrowth)
	onboarding := onboardingDays * onboardingValuePerDay * newSites
	errorShare := math.Min(0.12, math.Log(math.Max(1, nn-5)+1)*0.025) * maturity
	learning := onboarding + shipments*errorCostPerShipment*errorShare

	out.PredictiveIntelligence.EtaAccuracyImprovementPct = eta * 100
	out.CarrierBenchmarking.DataPointsShared = dataPoints
	out.CoordinationEfficiency.VariabilityReductionPct = variability * 100
	out.SharedLearning.OnboardingAccelerationDays = onboardingDays

	raw := planning + negotiation + buffer + learning
	if raw <= 0 {
		quarter := bonus / 4
		planning, negotiation, buffer = quarter, quarter, quarter
		learning = bonus - 3*quarter
	} else {
		scale := bonus / raw
		planning *= scale
		negotiation *= scale
		buffer *= scale
		learning *= scale
	}

	out.PredictiveIntelligence.PlanningSavings = planning
	out.CarrierBenchmarking.NegotiationLeverage = negotiation
	out.CoordinationEfficiency.BufferSavings = buffer
	out.SharedLearning.LearningSavings = learning
	return out
}
