// Package optimizer runs break-even searches over the economics engine.
package optimizer

import (
	"errors"
	"fmt"

	"github.com/iwvelando/yard-economics/internal/config"
	"github.com/iwvelando/yard-economics/internal/projection"
	"github.com/iwvelando/yard-economics/pkg/economics"
	"github.com/iwvelando/yard-economics/pkg/format"
	"github.com/iwvelando/yard-economics/pkg/mathutil"
	"github.com/iwvelando/yard-economics/pkg/network"
	"github.com/iwvelando/yard-economics/pkg/optimization"
	"go.uber.org/zap"
)

// ErrInvalidTarget marks a target rejected before any search runs.
var ErrInvalidTarget = errors.New("invalid optimizer target")

type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

type scenarioTarget struct {
	scenario config.Scenario
	target   config.OptimizerConfig
}

// Result summarizes break-even searches keyed by scenario name.
type Result struct {
	Summaries map[string][]optimization.Summary
}

// Empty indicates whether any searches were run.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches the summaries to the matching projections.
func (r Result) Apply(projections []projection.Projection) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range projections {
		summaries, ok := r.Summaries[projections[i].Name]
		if !ok {
			continue
		}
		projections[i].Optimizations = append(projections[i].Optimizations, summaries...)
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run executes every target of every active scenario. The configuration is
// not modified.
func (r *Runner) Run() (*Result, error) {
	targets, err := r.collectTargets()
	if err != nil {
		return nil, err
	}

	summaries := make(map[string][]optimization.Summary)
	for _, t := range targets {
		in, err := t.scenario.RoiInput()
		if err != nil {
			return nil, err
		}

		var summary optimization.Summary
		switch t.target.Kind {
		case config.OptimizerKindMinFacilities:
			summary = MinimumFacilitiesForMultiplier(t.target.TargetMultiplier, in.Network, t.target.MaxFacilities, t.target.MaxIterations)
		case config.OptimizerKindBreakEvenRamp:
			summary, err = BreakEvenRampShare(in, t.target.Tolerance, t.target.MaxIterations)
			if err != nil {
				return nil, fmt.Errorf("scenario %s target %s: %w", t.scenario.Name, t.target.Name, err)
			}
		}
		summary.Scope = "scenario"
		summary.TargetName = t.target.Name
		summaries[t.scenario.Name] = append(summaries[t.scenario.Name], summary)

		r.logger.Info("optimizer solved break-even target",
			zap.String("op", "optimizer.Run"),
			zap.String("scenario", t.scenario.Name),
			zap.String("target", t.target.Name),
			zap.String("kind", summary.Kind),
			zap.Float64("value", summary.Value),
			zap.String("valueDisplay", summary.ValueDisplay),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return &Result{Summaries: summaries}, nil
}

func (r *Runner) collectTargets() ([]scenarioTarget, error) {
	var targets []scenarioTarget
	for _, scenario := range r.conf.Scenarios {
		if !scenario.Active {
			continue
		}
		for _, target := range scenario.Targets {
			if err := target.Validate(); err != nil {
				return nil, fmt.Errorf("scenario %s target %s: %w: %w", scenario.Name, target.Name, ErrInvalidTarget, err)
			}
			targets = append(targets, scenarioTarget{scenario: scenario, target: target})
		}
	}
	return targets, nil
}

// MinimumFacilitiesForMultiplier finds the smallest network whose multiplier
// reaches target, searching [1, maxFacilities]. The multiplier is
// non-decreasing in n, so a bisection over integers converges.
func MinimumFacilitiesForMultiplier(target float64, params network.Params, maxFacilities, maxIterations int) optimization.Summary {
	summary := optimization.Summary{
		Kind:   config.OptimizerKindMinFacilities,
		Target: target,
		Lower:  1,
		Upper:  float64(maxFacilities),
	}

	if target <= 1 {
		summary.Value = 1
		summary.ValueDisplay = facilitiesDisplay(1)
		summary.Converged = true
		return summary
	}

	upperResult := network.MetcalfeInspiredMultiplier(maxFacilities, params)
	if upperResult.Multiplier < target {
		summary.Value = float64(maxFacilities)
		summary.ValueDisplay = facilitiesDisplay(maxFacilities)
		summary.Notes = []string{fmt.Sprintf(
			"multiplier %s is not reached within %d facilities (reaches %s)",
			format.Multiplier(target), maxFacilities, format.Multiplier(upperResult.Multiplier),
		)}
		return summary
	}

	// lower never reaches the target, upper always does
	lower, upper := 1, maxFacilities
	iterations := 0
	for upper-lower > 1 && iterations < maxIterations {
		mid := lower + (upper-lower)/2
		iterations++
		if network.MetcalfeInspiredMultiplier(mid, params).Multiplier >= target {
			upper = mid
		} else {
			lower = mid
		}
	}

	summary.Value = float64(upper)
	summary.ValueDisplay = facilitiesDisplay(upper)
	summary.Iterations = iterations
	summary.Converged = upper-lower <= 1
	if !summary.Converged {
		summary.Notes = []string{fmt.Sprintf("search stopped after %d iterations between %d and %d facilities", iterations, lower, upper)}
	}
	return summary
}

// BreakEvenRampShare finds the smallest year-one ramp share at which the
// year-one net gain is non-negative.
func BreakEvenRampShare(in economics.RoiV2Input, tolerance float64, maxIterations int) (optimization.Summary, error) {
	summary := optimization.Summary{
		Kind:  config.OptimizerKindBreakEvenRamp,
		Lower: 0,
		Upper: 1,
	}

	evaluate := func(ramp float64) (float64, error) {
		trial := in.Clone()
		trial.YearOneRampShare = ramp
		r, err := economics.CalcRoiV2(trial)
		if err != nil {
			return 0, err
		}
		return r.YearOneNetGain, nil
	}

	upperNet, err := evaluate(1)
	if err != nil {
		return optimization.Summary{}, err
	}
	if upperNet < 0 {
		summary.Value = 1
		summary.ValueDisplay = format.Percent(1, 0)
		summary.Notes = []string{fmt.Sprintf(
			"year one does not break even at full ramp (net %s)", format.Money(upperNet),
		)}
		return summary, nil
	}

	lowerNet, err := evaluate(0)
	if err != nil {
		return optimization.Summary{}, err
	}
	if lowerNet >= 0 {
		summary.Value = 0
		summary.ValueDisplay = format.Percent(0, 1)
		summary.Converged = true
		return summary, nil
	}

	lower, upper := 0.0, 1.0
	iterations := 0
	for iterations < maxIterations && !mathutil.WithinTolerance(upper, lower, tolerance) {
		mid := lower + (upper-lower)/2
		net, err := evaluate(mid)
		if err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		if net >= 0 {
			upper = mid
		} else {
			lower = mid
		}
	}

	summary.Value = upper
	summary.ValueDisplay = format.Percent(upper, 1)
	summary.Iterations = iterations
	summary.Converged = mathutil.WithinTolerance(upper, lower, tolerance)
	if !summary.Converged {
		summary.Notes = []string{fmt.Sprintf("search stopped after %d iterations between %s and %s",
			iterations, format.Percent(lower, 2), format.Percent(upper, 2))}
	}
	return summary, nil
}

func facilitiesDisplay(n int) string {
	if n == 1 {
		return "1 facility"
	}
	return fmt.Sprintf("%d facilities", n)
}
