package main

import (
	"fmt"

	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/finance"
	"github.com/aggcycle/regrind/pkg/scenario"
	"github.com/aggcycle/regrind/pkg/study"
)

func printValidationReport(r *study.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  %s\n", e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s\n", w.Path)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  %s\n", i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printScenarioResult(name string, res *scenario.Result) {
	if name != "" {
		fmt.Printf("Study: %s\n\n", name)
	}
	fmt.Println("SIMULATION:")
	fmt.Printf("  truck trips:        %d\n", res.Simulation.TruckTrips)
	fmt.Printf("  total time:         %.2f h\n", float64(res.Simulation.TotalTimeHours))
	fmt.Printf("  total cost:         $%.2f\n", float64(res.Simulation.TotalCostUSD))
	fmt.Printf("  total emissions:    %.4f tCO2e\n", float64(res.Simulation.TotalEmissionsTonsCO2e))
	fmt.Printf("  material recovered: %.0f kg\n", float64(res.Simulation.MaterialRecoveredKg))
	fmt.Println()
	fmt.Println("ENVIRONMENTAL KPIs:")
	fmt.Printf("  CO2 avoided:              %.4f tCO2e\n", float64(res.CO2AvoidedTonsCO2e))
	fmt.Printf("  carbon capture potential: %.4f tCO2e\n", float64(res.CarbonCapturePotentialTonsCO2e))
	fmt.Printf("  truck miles avoided:      %.1f mi\n", float64(res.TruckMilesAvoided))
	fmt.Println()
	fmt.Println("FINANCIALS:")
	fmt.Printf("  gross revenue: $%.2f\n", float64(res.GrossRevenueUSD))
	fmt.Printf("  net revenue:   $%.2f\n", float64(res.NetRevenueUSD))

	if defaulted := countDefaults(res); defaulted > 0 {
		fmt.Printf("\n(%d assumptions used default values)\n", defaulted)
	}
}

func countDefaults(res *scenario.Result) int {
	n := 0
	for _, a := range res.AssumptionsUsed {
		if a.Source == assume.SourceDefault {
			n++
		}
	}
	return n
}

func printComparison(res *finance.ComparisonResult) {
	printMetrics("BASELINE", res.Baseline)
	printMetrics("ALTERNATIVE", res.Alternative)
	printMetrics("INCREMENTAL", res.Incremental)
	fmt.Printf("Preferred option: %s\n", res.PreferredOption)
}

func printMetrics(label string, m finance.ScenarioFinancialMetrics) {
	fmt.Printf("%s:\n", label)
	fmt.Printf("  cash flows: %v\n", m.CashFlows)
	fmt.Printf("  NPV:        $%.2f\n", m.NPVUSD)
	if m.IRR != nil {
		fmt.Printf("  IRR:        %.4f\n", *m.IRR)
	} else {
		fmt.Println("  IRR:        n/a (no sign change)")
	}
	if m.PaybackPeriod != nil {
		fmt.Printf("  payback:    %.2f periods\n", *m.PaybackPeriod)
	} else {
		fmt.Println("  payback:    never")
	}
	fmt.Println()
}
