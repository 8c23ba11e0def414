// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/yard-economics/internal/projection"
	"github.com/iwvelando/yard-economics/pkg/economics"
	"github.com/iwvelando/yard-economics/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type metric struct {
	label   string
	key     string
	value   func(economics.RoiV2Result) float64
	display func(float64) string
	digits  int
}

var metrics = []metric{
	{"Facilities", "totalFacilities", func(r economics.RoiV2Result) float64 { return float64(r.TotalFacilities) }, nil, 0},
	{"Shipments / year", "totalShipmentsPerYear", func(r economics.RoiV2Result) float64 { return r.TotalShipmentsPerYear }, format.Truckloads, 0},
	{"Labor savings", "annualLaborSavings", func(r economics.RoiV2Result) float64 { return r.AnnualLaborSavings }, format.Money, 2},
	{"Paperless savings", "paperlessSavings", func(r economics.RoiV2Result) float64 { return r.PaperlessSavings }, format.Money, 2},
	{"Detention savings", "annualDetentionSavings", func(r economics.RoiV2Result) float64 { return r.AnnualDetentionSavings }, format.Money, 2},
	{"Throughput value", "throughputValue", func(r economics.RoiV2Result) float64 { return r.ThroughputValue }, format.Money, 2},
	{"Shipper of choice", "shipperOfChoiceValue", func(r economics.RoiV2Result) float64 { return r.ShipperOfChoiceValue }, format.Money, 2},
	{"Enterprise add-ons", "enterpriseAddOns", func(r economics.RoiV2Result) float64 { return r.EnterpriseAddOns.TotalAnnualValue }, format.Money, 2},
	{"Base savings", "baseSavings", func(r economics.RoiV2Result) float64 { return r.BaseSavings }, format.Money, 2},
	{"Network multiplier", "networkMultiplier", func(r economics.RoiV2Result) float64 { return r.NetworkMultiplier }, format.Multiplier, 6},
	{"Network bonus", "networkBonusSavings", func(r economics.RoiV2Result) float64 { return r.NetworkBonusSavings }, format.Money, 2},
	{"Total annual savings", "totalAnnualSavings", func(r economics.RoiV2Result) float64 { return r.TotalAnnualSavings }, format.Money, 2},
	{"Implementation cost", "implementationCost", func(r economics.RoiV2Result) float64 { return r.ImplementationCost }, format.Money, 2},
	{"Annual subscription", "annualSubscription", func(r economics.RoiV2Result) float64 { return r.AnnualSubscription }, format.Money, 2},
	{"Year-one gross savings", "yearOneGrossSavings", func(r economics.RoiV2Result) float64 { return r.YearOneGrossSavings }, format.Money, 2},
	{"Year-one net gain", "yearOneNetGain", func(r economics.RoiV2Result) float64 { return r.YearOneNetGain }, format.Money, 2},
	{"Year-one ROI", "yearOneRoiPercent", func(r economics.RoiV2Result) float64 { return r.YearOneRoiPercent }, format.ROI, 2},
	{"Payback", "paybackMonths", func(r economics.RoiV2Result) float64 { return r.PaybackMonths }, format.Payback, 2},
	{"Five-year value", "fiveYearValue", func(r economics.RoiV2Result) float64 { return r.FiveYearValue }, format.Money, 2},
}

// PrettyFormat writes a human-readable report per scenario.
func PrettyFormat(w io.Writer, results []projection.Projection) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		_, _ = fmt.Fprintf(w, "%-24s | %s\n", "Metric", "Value")
		_, _ = fmt.Fprintf(w, "%-24s | %s\n", "______", "_____")
		for _, m := range metrics {
			v := m.value(result.Result)
			var shown string
			if m.display != nil {
				shown = m.display(v)
			} else {
				shown = p.Sprintf("%d", int(v))
			}
			_, _ = fmt.Fprintf(w, "%-24s | %s\n", m.label, shown)
		}

		b := result.Result.NetworkEffectBreakdown
		if b.TotalNetworkBonus > 0 {
			_, _ = fmt.Fprintf(w, "Network bonus by stream:\n")
			_, _ = fmt.Fprintf(w, "  predictive intelligence  %s\n", format.Money(b.PredictiveIntelligence.PlanningSavings))
			_, _ = fmt.Fprintf(w, "  carrier benchmarking     %s\n", format.Money(b.CarrierBenchmarking.NegotiationLeverage))
			_, _ = fmt.Fprintf(w, "  coordination efficiency  %s\n", format.Money(b.CoordinationEfficiency.BufferSavings))
			_, _ = fmt.Fprintf(w, "  shared learning          %s\n", format.Money(b.SharedLearning.LearningSavings))
		}

		if s := result.Scenario; s != nil {
			_, _ = fmt.Fprintf(w, "Profit basis: %s at %s per truckload\n", s.ProfitMethod, format.Money(s.PerTruckloadProfit))
			_, _ = fmt.Fprintf(w, "Five-year NPV: %s\n", format.Currency(s.Finance.FiveYearNPV))
			_, _ = fmt.Fprintf(w, "Cost of delay: %s per 90 days, %s per 30 days\n",
				format.Currency(s.Finance.CostOfDelay90Days), format.Currency(s.Finance.CostOfDelay30Days))
		}

		for _, warning := range result.Warnings {
			_, _ = fmt.Fprintf(w, "[%s] %s\n", warning.Severity, warning.Message)
		}
		for _, summary := range result.Optimizations {
			status := "converged"
			if !summary.Converged {
				status = "not converged"
			}
			_, _ = fmt.Fprintf(w, "Break-even %s: %s (%s after %d iterations)\n",
				summary.TargetName, summary.ValueDisplay, status, summary.Iterations)
			for _, note := range summary.Notes {
				_, _ = fmt.Fprintf(w, "  note: %s\n", note)
			}
		}

		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes one row per metric and one column per scenario.
func CsvFormat(w io.Writer, results []projection.Projection) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(results)+1)
	header = append(header, "metric")
	for _, result := range results {
		header = append(header, result.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, m := range metrics {
		row := make([]string, 0, len(results)+1)
		row = append(row, m.key)
		for _, result := range results {
			row = append(row, strconv.FormatFloat(m.value(result.Result), 'f', m.digits, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString renders CsvFormat into a string.
func CsvString(results []projection.Projection) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the projections as indented JSON.
func JSONFormat(w io.Writer, results []projection.Projection) error {
	if results == nil {
		results = []projection.Projection{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
