package economics

import (
	"fmt"
	"math"

	"github.com/iwvelando/yard-economics/pkg/mathutil"
)

// Severity grades a credibility warning.
type Severity string

// Warning severities
const (
	SeverityInfo    Severity = "info"
	SeverityCaution Severity = "caution"
)

// Warning flags an output a finance reviewer is likely to challenge. Warnings
// never block a result.
type Warning struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Credibility thresholds
const (
	RoiExtremePercent      = 1000.0
	RoiUncommonPercent     = 500.0
	PaybackFloorMonths     = 1.0
	PaybackCeilingMonths   = 120.0
	MultiplierExtreme      = 10.0
	MultiplierMature       = 6.0
	ThroughputShareCeiling = 0.5
	BaseSavingsFloor       = 50000.0
	RealizedShareLow       = 0.10
	RealizedShareHigh      = 0.30
)

// CheckCredibility returns the warnings raised by a projection. The order is
// stable: ROI, payback, multiplier, throughput, base savings, realization.
func CheckCredibility(in RoiV2Input, r RoiV2Result) []Warning {
	var warnings []Warning
	add := func(code string, sev Severity, format string, args ...interface{}) {
		warnings = append(warnings, Warning{Code: code, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	switch roi := r.YearOneRoiPercent; {
	case roi > RoiExtremePercent:
		add("roi_extreme", SeverityCaution, "Year-1 ROI above %.0f%% is extremely rare for enterprise software; consider the conservative mode", RoiExtremePercent)
	case roi > RoiUncommonPercent:
		add("roi_uncommon", SeverityInfo, "Year-1 ROI above %.0f%% is uncommon; verify assumptions with historical data", RoiUncommonPercent)
	case roi < 0:
		add("roi_negative", SeverityInfo, "negative Year-1 ROI; the network may be too small for cost recovery")
	}

	switch p := r.PaybackMonths; {
	case p == NoPayback:
		add("payback_none", SeverityCaution, "savings never recover the implementation and subscription cost")
	case p < PaybackFloorMonths:
		add("payback_too_fast", SeverityCaution, "payback under %.0f month is unrealistic for an enterprise deployment; check the year-one ramp", PaybackFloorMonths)
	case p > PaybackCeilingMonths:
		add("payback_too_slow", SeverityInfo, "payback beyond %.0f months; the network may not justify the investment at this scale", PaybackCeilingMonths)
	}

	switch m := r.NetworkMultiplier; {
	case m > MultiplierExtreme:
		add("multiplier_extreme", SeverityCaution, "network multiplier above %.0fx is highly assumption-sensitive", MultiplierExtreme)
	case m > MultiplierMature:
		add("multiplier_mature", SeverityInfo, "network multiplier above %.0fx assumes mature network effects; verify beta and tau", MultiplierMature)
	}

	if other := r.BaseSavings - r.ThroughputValue; other > 0 {
		if share := r.ThroughputValue / other; share > ThroughputShareCeiling {
			add("throughput_heavy", SeverityInfo, "throughput gains are %.0f%% of the other savings and may require infrastructure changes", math.Round(mathutil.CalculatePercentage(r.ThroughputValue, other)))
		}
	}

	if r.BaseSavings < BaseSavingsFloor {
		add("base_savings_low", SeverityInfo, "base savings are below $%.0f; verify facility count and operating assumptions", BaseSavingsFloor)
	}

	if rs := in.Throughput.RealizedShare; rs < RealizedShareLow || rs > RealizedShareHigh {
		add("realized_share_band", SeverityInfo, "realized throughput share %.0f%% is outside the %.0f-%.0f%% band seen in deployments",
			rs*100, RealizedShareLow*100, RealizedShareHigh*100)
	}

	return warnings
}
