package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/aggcycle/regrind/pkg/finance"
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/scenario"
	"github.com/aggcycle/regrind/pkg/study"
	"github.com/aggcycle/regrind/pkg/sweep"
	"github.com/aggcycle/regrind/pkg/units"
)

// loadAndValidate loads the study and runs schema validation.
func loadAndValidate(projectPath string) (*study.Study, *study.Report, error) {
	s, err := study.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading study: %w", err)
	}
	return s, study.ValidateSchema(s), nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runSimulate(projectPath string) error {
	s, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("study has validation errors")
	}

	res, err := scenario.Analyze(s.UnitOfWork, s.CostDrivers, s.SustainabilityDrivers, s.Simulation, s.Scenario)
	if err != nil {
		return err
	}

	printScenarioResult(s.Name, res)
	return nil
}

func runSweep(projectPath string) error {
	s, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("study has validation errors")
	}
	if s.Sweep == nil {
		return fmt.Errorf("study has no sweep section")
	}

	res, err := sweep.Run(sweep.Request{
		TraceID:               uuid.NewString(),
		UnitOfWork:            s.UnitOfWork,
		CostDrivers:           s.CostDrivers,
		SustainabilityDrivers: s.SustainabilityDrivers,
		Axes:                  s.Sweep.Axes,
		Assumptions:           s.Sweep.Assumptions,
		Penalty:               s.Sweep.ExpeditePenalty,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runInvest(projectPath string) error {
	s, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("study has validation errors")
	}
	if s.Investment == nil {
		return fmt.Errorf("study has no investment section")
	}

	baseline, err := buildScenarioSpec(s, s.Investment.Baseline)
	if err != nil {
		return err
	}
	alternative, err := buildScenarioSpec(s, s.Investment.Alternative)
	if err != nil {
		return err
	}

	res, err := finance.EvaluateInvestment(s.Investment.DiscountRate, baseline, alternative)
	if err != nil {
		return err
	}

	printComparison(res)
	return nil
}

// buildScenarioSpec simulates one run in the scenario's mode and applies
// that run's operating cost to every period of the scenario.
func buildScenarioSpec(s *study.Study, sc study.InvestmentScenario) (finance.ScenarioSpec, error) {
	opts := s.Simulation
	opts.Mode = sc.Mode

	sim, err := flow.Simulate(s.UnitOfWork, s.CostDrivers, s.SustainabilityDrivers, opts)
	if err != nil {
		return finance.ScenarioSpec{}, err
	}

	spec := finance.ScenarioSpec{InitialInvestmentUSD: units.USD(sc.InitialInvestmentUSD)}
	for _, p := range sc.Periods {
		spec.Points = append(spec.Points, finance.CashFlowPoint{
			Period:           p.Period,
			Simulation:       sim,
			RevenueUSD:       units.USD(p.RevenueUSD),
			OtherCashFlowUSD: p.OtherCashFlowUSD,
		})
	}
	return spec, nil
}
