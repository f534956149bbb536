package finance

import (
	"fmt"

	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/units"
)

// CashFlowPoint is one period's contribution to a scenario: the simulated
// operating run for that period, the revenue it earns, and any other net
// cash flow (grants, maintenance, salvage). Periods are positive integers;
// several points may share a period and their contributions sum.
type CashFlowPoint struct {
	Period           int         `json:"period" yaml:"period"`
	Simulation       flow.Result `json:"simulation" yaml:"simulation"`
	RevenueUSD       units.USD   `json:"revenue_usd" yaml:"revenue_usd"`
	OtherCashFlowUSD *float64    `json:"other_cash_flow_usd,omitempty" yaml:"other_cash_flow_usd,omitempty"`
}

// ScenarioSpec describes one investment scenario: the upfront outlay at
// period 0 and the per-period operating points.
type ScenarioSpec struct {
	InitialInvestmentUSD units.USD       `json:"initial_investment_usd" yaml:"initial_investment_usd"`
	Points               []CashFlowPoint `json:"points" yaml:"points"`
}

// ScenarioFinancialMetrics holds the evaluated series and its summary
// figures. IRR and payback are nil when the series admits no answer.
type ScenarioFinancialMetrics struct {
	CashFlows     []float64 `json:"cash_flows"`
	NPVUSD        float64   `json:"npv_usd"`
	IRR           *float64  `json:"irr"`
	PaybackPeriod *float64  `json:"payback_period"`
}

// PreferredOption tags which scenario wins the NPV comparison.
type PreferredOption string

const (
	PreferBaseline    PreferredOption = "baseline"
	PreferAlternative PreferredOption = "alternative"
	PreferTie         PreferredOption = "tie"
)

// ComparisonResult is the full output of EvaluateInvestment.
type ComparisonResult struct {
	Baseline        ScenarioFinancialMetrics `json:"baseline"`
	Alternative     ScenarioFinancialMetrics `json:"alternative"`
	Incremental     ScenarioFinancialMetrics `json:"incremental"`
	PreferredOption PreferredOption          `json:"preferred_option"`
}

// EvaluateInvestment reduces both scenarios to per-period net cash flows
// over the sorted union of all periods seen in either one, evaluates
// NPV/IRR/payback for baseline, alternative, and the period-wise
// incremental difference, and prefers whichever scenario has the strictly
// higher NPV.
func EvaluateInvestment(discountRate float64, baseline, alternative ScenarioSpec) (*ComparisonResult, error) {
	if discountRate <= -1 {
		return nil, fmt.Errorf("%w: discount rate must be > -1 (got %v)", units.ErrInvalidInput, discountRate)
	}

	baseFlows, err := netFlowsByPeriod("baseline", baseline.Points)
	if err != nil {
		return nil, err
	}
	altFlows, err := netFlowsByPeriod("alternative", alternative.Points)
	if err != nil {
		return nil, err
	}

	maxPeriod := 0
	for p := range baseFlows {
		if p > maxPeriod {
			maxPeriod = p
		}
	}
	for p := range altFlows {
		if p > maxPeriod {
			maxPeriod = p
		}
	}

	baseSeries := buildSeries(baseline.InitialInvestmentUSD, baseFlows, maxPeriod)
	altSeries := buildSeries(alternative.InitialInvestmentUSD, altFlows, maxPeriod)

	incremental := make([]float64, maxPeriod+1)
	for i := range incremental {
		incremental[i] = altSeries[i] - baseSeries[i]
	}

	baseMetrics, err := evaluateSeries(discountRate, baseSeries)
	if err != nil {
		return nil, err
	}
	altMetrics, err := evaluateSeries(discountRate, altSeries)
	if err != nil {
		return nil, err
	}
	incMetrics, err := evaluateSeries(discountRate, incremental)
	if err != nil {
		return nil, err
	}

	preferred := PreferTie
	switch {
	case altMetrics.NPVUSD > baseMetrics.NPVUSD:
		preferred = PreferAlternative
	case baseMetrics.NPVUSD > altMetrics.NPVUSD:
		preferred = PreferBaseline
	}

	return &ComparisonResult{
		Baseline:        baseMetrics,
		Alternative:     altMetrics,
		Incremental:     incMetrics,
		PreferredOption: preferred,
	}, nil
}

// netFlowsByPeriod folds a scenario's points into one net flow per period:
// revenue minus simulated operating cost plus any other cash flow.
func netFlowsByPeriod(scenario string, points []CashFlowPoint) (map[int]float64, error) {
	flows := make(map[int]float64, len(points))
	for _, pt := range points {
		if err := units.PositiveInt(scenario+" period", pt.Period); err != nil {
			return nil, err
		}
		net := float64(pt.RevenueUSD) - float64(pt.Simulation.TotalCostUSD)
		if pt.OtherCashFlowUSD != nil {
			net += *pt.OtherCashFlowUSD
		}
		flows[pt.Period] += net
	}
	return flows, nil
}

func buildSeries(initialInvestment units.USD, flows map[int]float64, maxPeriod int) []float64 {
	series := make([]float64, maxPeriod+1)
	series[0] = -float64(initialInvestment)
	for p, f := range flows {
		series[p] = f
	}
	return series
}

func evaluateSeries(discountRate float64, series []float64) (ScenarioFinancialMetrics, error) {
	npv, err := NPV(discountRate, series)
	if err != nil {
		return ScenarioFinancialMetrics{}, err
	}
	return ScenarioFinancialMetrics{
		CashFlows:     series,
		NPVUSD:        npv,
		IRR:           IRR(series),
		PaybackPeriod: PaybackPeriod(series),
	}, nil
}
