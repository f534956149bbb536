// Package study loads and validates a study file: one YAML document
// describing the unit of work, the cost and sustainability drivers, and
// the optional sweep and investment sections the CLI and server operate
// on.
package study

import (
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/scenario"
	"github.com/aggcycle/regrind/pkg/sweep"
)

// Study is the top-level study document.
type Study struct {
	Name                  string                     `yaml:"name" json:"name"`
	UnitOfWork            flow.UnitOfWork            `yaml:"unit_of_work" json:"unit_of_work"`
	CostDrivers           flow.CostDrivers           `yaml:"cost_drivers" json:"cost_drivers"`
	SustainabilityDrivers flow.SustainabilityDrivers `yaml:"sustainability_drivers" json:"sustainability_drivers"`
	Simulation            flow.Options               `yaml:"simulation" json:"simulation"`
	Scenario              scenario.Config            `yaml:"scenario" json:"scenario"`
	Sweep                 *SweepDef                  `yaml:"sweep,omitempty" json:"sweep,omitempty"`
	Investment            *Investment                `yaml:"investment,omitempty" json:"investment,omitempty"`
}

// SweepDef is the study's sensitivity-sweep section.
type SweepDef struct {
	Axes            sweep.Axes            `yaml:"axes" json:"axes"`
	Assumptions     sweep.Assumptions     `yaml:"assumptions" json:"assumptions"`
	ExpeditePenalty sweep.ExpeditePenalty `yaml:"expedite_penalty" json:"expedite_penalty"`
}

// InvestmentPeriod is one period's revenue in an investment scenario. The
// operating cost comes from the study's simulated run for that scenario's
// mode.
type InvestmentPeriod struct {
	Period           int      `yaml:"period" json:"period"`
	RevenueUSD       float64  `yaml:"revenue_usd" json:"revenue_usd"`
	OtherCashFlowUSD *float64 `yaml:"other_cash_flow_usd,omitempty" json:"other_cash_flow_usd,omitempty"`
}

// InvestmentScenario describes one side of the investment comparison.
type InvestmentScenario struct {
	Mode                 flow.Mode          `yaml:"mode" json:"mode"`
	InitialInvestmentUSD float64            `yaml:"initial_investment_usd" json:"initial_investment_usd"`
	Periods              []InvestmentPeriod `yaml:"periods" json:"periods"`
}

// Investment is the study's investment-evaluation section.
type Investment struct {
	DiscountRate float64            `yaml:"discount_rate" json:"discount_rate"`
	Baseline     InvestmentScenario `yaml:"baseline" json:"baseline"`
	Alternative  InvestmentScenario `yaml:"alternative" json:"alternative"`
}
