package format

import (
	"math"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "$0.00"},
		{999.5, "$999.50"},
		{1234.56, "$1,234.56"},
		{-1234567.891, "-$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := Currency(tt.input); got != tt.expected {
			t.Errorf("Currency(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{950, "$950"},
		{1950, "$2K"},
		{6380656.65, "$6.38M"},
		{3425413234.9, "$3.43B"},
		{-2500000, "$-2.50M"},
	}
	for _, tt := range tests {
		if got := Money(tt.input); got != tt.expected {
			t.Errorf("Money(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestROI(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{math.NaN(), "N/A"},
		{-12, "Negative"},
		{0, "0%"},
		{187.4, "187%"},
		{640, "~600%"},
		{4030.38, ">1000%"},
	}
	for _, tt := range tests {
		if got := ROI(tt.input); got != tt.expected {
			t.Errorf("ROI(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestPayback(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{-1, "N/A"},
		{0, "N/A"},
		{0.29, "<1 month"},
		{7.3, "7.3 months"},
		{36, "3 years"},
		{200, ">10 years"},
	}
	for _, tt := range tests {
		if got := Payback(tt.input); got != tt.expected {
			t.Errorf("Payback(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0.5, "1.0x"},
		{1.0008, "1.0x"},
		{3.98, "4.0x"},
		{7.2, "~7.2x (network mature)"},
		{15, ">10x (high uncertainty)"},
	}
	for _, tt := range tests {
		if got := Multiplier(tt.input); got != tt.expected {
			t.Errorf("Multiplier(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestTruckloadsAndPercent(t *testing.T) {
	if got := Truckloads(135200.4); got != "135,200" {
		t.Errorf("Truckloads(135200.4) = %q, expected 135,200", got)
	}
	if got := Percent(0.7, 0); got != "70%" {
		t.Errorf("Percent(0.7, 0) = %q, expected 70%%", got)
	}
	if got := Range(1, 2, 3, Money); got != "$1 - $3 (expected: $2)" {
		t.Errorf("Range() = %q", got)
	}
}
