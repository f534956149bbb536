package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/finance"
	"github.com/aggcycle/regrind/pkg/flow"
	"github.com/aggcycle/regrind/pkg/kpi"
	"github.com/aggcycle/regrind/pkg/scenario"
	"github.com/aggcycle/regrind/pkg/sweep"
)

type simulateRequest struct {
	TraceID               string                     `json:"trace_id"`
	UnitOfWork            flow.UnitOfWork            `json:"unit_of_work" binding:"required"`
	CostDrivers           flow.CostDrivers           `json:"cost_drivers" binding:"required"`
	SustainabilityDrivers flow.SustainabilityDrivers `json:"sustainability_drivers" binding:"required"`
	Options               flow.Options               `json:"options"`
}

func handleSimulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	trace := traceID(req.TraceID)

	res, err := flow.Simulate(req.UnitOfWork, req.CostDrivers, req.SustainabilityDrivers, req.Options)
	if err != nil {
		writeEngineError(c, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trace_id": trace, "result": res})
}

type kpiRequest struct {
	TraceID    string        `json:"trace_id"`
	Simulation flow.Result   `json:"simulation" binding:"required"`
	Factors    kpi.Overrides `json:"factors"`
}

func handleKpi(c *gin.Context) {
	var req kpiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	trace := traceID(req.TraceID)

	var tr assume.Trace
	factors := kpi.Resolve(req.Factors, &tr)

	co2Avoided, err := kpi.ComputeCO2Avoided(req.Simulation, factors)
	if err != nil {
		writeEngineError(c, trace, err)
		return
	}
	capture, err := kpi.ComputeCarbonCapturePotential(req.Simulation, factors)
	if err != nil {
		writeEngineError(c, trace, err)
		return
	}
	miles, err := kpi.ComputeTruckMilesAvoided(req.Simulation, factors)
	if err != nil {
		writeEngineError(c, trace, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trace_id":                           trace,
		"co2_avoided_tons_co2e":              co2Avoided,
		"carbon_capture_potential_tons_co2e": capture,
		"truck_miles_avoided":                miles,
		"assumptions_used":                   tr.Applied(),
	})
}

func handleSweep(c *gin.Context) {
	var req sweep.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	req.TraceID = traceID(req.TraceID)

	res, err := sweep.Run(req)
	if err != nil {
		writeEngineError(c, req.TraceID, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type investRequest struct {
	TraceID      string               `json:"trace_id"`
	DiscountRate float64              `json:"discount_rate"`
	Baseline     finance.ScenarioSpec `json:"baseline" binding:"required"`
	Alternative  finance.ScenarioSpec `json:"alternative" binding:"required"`
}

func handleInvest(c *gin.Context) {
	var req investRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	trace := traceID(req.TraceID)

	res, err := finance.EvaluateInvestment(req.DiscountRate, req.Baseline, req.Alternative)
	if err != nil {
		writeEngineError(c, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trace_id": trace, "comparison": res})
}

type scenarioRequest struct {
	TraceID               string                     `json:"trace_id"`
	UnitOfWork            flow.UnitOfWork            `json:"unit_of_work" binding:"required"`
	CostDrivers           flow.CostDrivers           `json:"cost_drivers" binding:"required"`
	SustainabilityDrivers flow.SustainabilityDrivers `json:"sustainability_drivers" binding:"required"`
	Options               flow.Options               `json:"options"`
	Config                scenario.Config            `json:"config"`
}

func handleScenario(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	trace := traceID(req.TraceID)

	res, err := scenario.Analyze(req.UnitOfWork, req.CostDrivers, req.SustainabilityDrivers, req.Options, req.Config)
	if err != nil {
		writeEngineError(c, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trace_id": trace, "scenario": res})
}
