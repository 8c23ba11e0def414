// Package network models the Metcalfe-inspired value multiplier of a
// connected facility network and its attribution to value streams.
//
// The canonical multiplier is
//
//	C(n) = n(n-1)/2
//	R(n) = 1 - exp(-n/tau)
//	C0   = C(n0), n0 = 10
//	M(n) = 1 + beta * (C(n)/C0) * R(n)
//
// M is exactly 1 for a single facility and non-decreasing in n for any
// beta >= 0 and tau > 0.
package network

import (
	"math"

	"github.com/iwvelando/yard-economics/pkg/constants"
	"github.com/iwvelando/yard-economics/pkg/mathutil"
)

// minTau keeps the realization exponent finite.
const minTau = 0.0001

// Params are the calibrated network constants. They are versioned with the
// engine: changing them changes every historical projection.
type Params struct {
	// Beta is the network strength; higher beta, larger bonus for a given n.
	Beta float64 `json:"beta" yaml:"beta" mapstructure:"beta"`
	// Tau is the maturity constant in facilities.
	Tau float64 `json:"tau" yaml:"tau" mapstructure:"tau"`
}

// DefaultParams returns the base-case parameters (beta 0.004, tau 45).
func DefaultParams() Params {
	return Params{Beta: constants.DefaultNetworkBeta, Tau: constants.DefaultNetworkTau}
}

// Result is the decomposed multiplier for one network size.
type Result struct {
	N                   int     `json:"n"`
	N0                  int     `json:"n0"`
	Connections         float64 `json:"connections"`
	BaselineConnections float64 `json:"baselineConnections"`
	Realization         float64 `json:"realization"`
	Multiplier          float64 `json:"multiplier"`
	Beta                float64 `json:"beta"`
	Tau                 float64 `json:"tau"`
}

// Connections returns the unordered facility pair count n(n-1)/2.
func Connections(n int) float64 {
	if n < 0 {
		n = 0
	}
	nn := float64(n)
	return nn * (nn - 1) / 2
}

// BaselineConnections returns C0, the connection count of the calibration network.
func BaselineConnections() float64 {
	return Connections(constants.NetworkBaselineFacilities)
}

// RealizationFactor returns 1 - exp(-n/tau) in [0, 1).
func RealizationFactor(n int, tau float64) float64 {
	if n < 0 {
		n = 0
	}
	t := math.Max(minTau, tau)
	return mathutil.Clamp(1-math.Exp(-float64(n)/t), 0, 1)
}

// MetcalfeInspiredMultiplier computes the multiplier for n facilities.
// Values of n below 1 are treated as a single facility.
func MetcalfeInspiredMultiplier(n int, params Params) Result {
	if n < 1 {
		n = 1
	}
	beta := mathutil.NonNegative(params.Beta)
	tau := math.Max(minTau, params.Tau)

	result := Result{
		N:                   n,
		N0:                  constants.NetworkBaselineFacilities,
		Connections:         Connections(n),
		BaselineConnections: BaselineConnections(),
		Realization:         RealizationFactor(n, tau),
		Multiplier:          1,
		Beta:                beta,
		Tau:                 tau,
	}
	if n == 1 {
		return result
	}

	m := 1 + beta*(result.Connections/result.BaselineConnections)*result.Realization
	if mathutil.IsFinite(m) {
		result.Multiplier = m
	}
	return result
}

// Curve evaluates the multiplier at each of the given network sizes.
func Curve(sizes []int, params Params) []Result {
	points := make([]Result, 0, len(sizes))
	for _, n := range sizes {
		points = append(points, MetcalfeInspiredMultiplier(n, params))
	}
	return points
}
