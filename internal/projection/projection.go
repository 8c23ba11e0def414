// Package projection defines the data structures related to a scenario
// projection and includes functions for computing them across a configuration.
package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/yard-economics/internal/config"
	"github.com/iwvelando/yard-economics/pkg/economics"
	"github.com/iwvelando/yard-economics/pkg/optimization"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of scenarios evaluated at once when
// the configuration leaves it unset.
const DefaultConcurrency = 4

// Projection holds all information related to a specific scenario projection.
type Projection struct {
	Name          string                 `json:"name"`
	Input         economics.RoiV2Input   `json:"input"`
	Result        economics.RoiV2Result  `json:"result"`
	Scenario      *economics.Scenario    `json:"scenario,omitempty"`
	Warnings      []economics.Warning    `json:"warnings,omitempty"`
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
}

// Evaluate computes a single configured scenario. Scenarios with a profit
// block go through the scenario adapter; the rest through the engine alone.
func Evaluate(s config.Scenario) (Projection, error) {
	p := Projection{Name: s.Name}

	scenarioInput, ok, err := s.ScenarioInput()
	if err != nil {
		return Projection{}, err
	}
	if ok {
		scenario, err := economics.CalcScenario(scenarioInput)
		if err != nil {
			return Projection{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		p.Input = scenarioInput.Roi
		p.Result = scenario.Roi
		p.Scenario = &scenario
		p.Warnings = scenario.Warnings
		return p, nil
	}

	in, err := s.RoiInput()
	if err != nil {
		return Projection{}, err
	}
	result, err := economics.CalcRoiV2(in)
	if err != nil {
		return Projection{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	p.Input = in
	p.Result = result
	p.Warnings = economics.CheckCredibility(in, result)
	return p, nil
}

// GetProjections evaluates every active scenario concurrently and returns
// the projections in configured order. The first failure cancels the rest.
func GetProjections(ctx context.Context, logger *zap.Logger, conf config.Configuration) ([]Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var active []config.Scenario
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "projection.GetProjections"),
			)
			continue
		}
		active = append(active, scenario)
	}

	limit := conf.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]Projection, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, scenario := range active {
		i, scenario := i, scenario
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			p, err := Evaluate(scenario)
			if err != nil {
				return err
			}
			results[i] = p
			logger.Debug("scenario projected",
				zap.String("op", "projection.GetProjections"),
				zap.String("scenario", scenario.Name),
				zap.Int("facilities", p.Result.TotalFacilities),
				zap.Float64("totalAnnualSavings", p.Result.TotalAnnualSavings),
				zap.Int("warnings", len(p.Warnings)),
				zap.Duration("duration", time.Since(start)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
