package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/yard-economics/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money abbreviates large amounts: $1.23B, $4.56M, $789K, $950.
func Money(amount float64) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", amount/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", amount/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.0fK", amount/1e3)
	}
	return printer.Sprintf("$%d", int64(math.Round(amount)))
}

// Percent renders a share (0.25) as a percentage ("25%").
func Percent(share float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, share*100)
}

// ROI renders a year-one ROI percentage. Values above 500% are rounded to the
// nearest hundred and values above 1000% are capped.
func ROI(percent float64) string {
	switch {
	case !mathutil.IsFinite(percent):
		return "N/A"
	case percent < 0:
		return "Negative"
	case percent > 1000:
		return ">1000%"
	case percent > 500:
		return fmt.Sprintf("~%.0f%%", math.Round(percent/100)*100)
	}
	return fmt.Sprintf("%.0f%%", math.Round(percent))
}

// Payback renders payback months. Non-positive values, including the
// no-payback marker, render as N/A.
func Payback(months float64) string {
	switch {
	case !mathutil.IsFinite(months) || months <= 0:
		return "N/A"
	case months < 1:
		return "<1 month"
	case months > 120:
		return ">10 years"
	case months > 24:
		return fmt.Sprintf("%.0f years", math.Round(months/12))
	}
	return fmt.Sprintf("%.1f months", months)
}

// Multiplier renders the network multiplier with its credibility context.
func Multiplier(m float64) string {
	switch {
	case !mathutil.IsFinite(m) || m < 1:
		return "1.0x"
	case m > 10:
		return ">10x (high uncertainty)"
	case m > 6:
		return fmt.Sprintf("~%.1fx (network mature)", m)
	}
	return fmt.Sprintf("%.1fx", m)
}

// Truckloads renders a truckload count rounded to a whole load.
func Truckloads(n float64) string {
	return printer.Sprintf("%d", int64(math.Round(n)))
}

// Range shows a conservative to upside span with the expected value.
func Range(conservative, expected, upside float64, f func(float64) string) string {
	return fmt.Sprintf("%s - %s (expected: %s)", f(conservative), f(upside), f(expected))
}
