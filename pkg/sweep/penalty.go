package sweep

import (
	"fmt"
	"math"

	"github.com/aggcycle/regrind/pkg/assume"
	"github.com/aggcycle/regrind/pkg/units"
)

// ExpeditePenalty is an optional, explicitly-labeled planning assumption:
// a proxy for the extra cost and emissions risk of expediting work when
// specification readiness is low or the haul is long. It is not derived
// from measured data and is disabled by default; when disabled both
// penalties are exactly zero.
type ExpeditePenalty struct {
	Enabled                      bool     `json:"enabled" yaml:"enabled"`
	SpecReadiness                *float64 `json:"spec_readiness,omitempty" yaml:"spec_readiness,omitempty"`
	LowSpecReadinessThreshold    *float64 `json:"low_spec_readiness_threshold,omitempty" yaml:"low_spec_readiness_threshold,omitempty"`
	Exponent                     *float64 `json:"exponent,omitempty" yaml:"exponent,omitempty"`
	HaulDistanceThresholdKm      *float64 `json:"haul_distance_threshold_km,omitempty" yaml:"haul_distance_threshold_km,omitempty"`
	BaseCostPenaltyUSD           *float64 `json:"base_cost_penalty_usd,omitempty" yaml:"base_cost_penalty_usd,omitempty"`
	HaulCostPenaltyPerKm         *float64 `json:"haul_cost_penalty_per_km,omitempty" yaml:"haul_cost_penalty_per_km,omitempty"`
	BaseEmissionsPenaltyTonsCO2e *float64 `json:"base_emissions_penalty_tons_co2e,omitempty" yaml:"base_emissions_penalty_tons_co2e,omitempty"`
	HaulEmissionsPenaltyPerKm    *float64 `json:"haul_emissions_penalty_per_km,omitempty" yaml:"haul_emissions_penalty_per_km,omitempty"`
}

// Documented penalty-proxy defaults.
const (
	DefaultSpecReadiness                = 0.5
	DefaultLowSpecReadinessThreshold    = 0.6
	DefaultPenaltyExponent              = 2.0
	DefaultHaulDistanceThresholdKm      = 40.0
	DefaultBaseCostPenaltyUSD           = 500.0
	DefaultHaulCostPenaltyPerKm         = 2.5
	DefaultBaseEmissionsPenaltyTonsCO2e = 0.05
	DefaultHaulEmissionsPenaltyPerKm    = 0.0005
)

type resolvedPenalty struct {
	enabled         bool
	specReadiness   float64
	lowThreshold    float64
	exponent        float64
	haulThresholdKm float64
	baseCostUSD     float64
	haulCostPerKm   float64
	baseEmissions   float64
	haulEmisPerKm   float64
}

func (p ExpeditePenalty) resolve(trace *assume.Trace) resolvedPenalty {
	if !p.Enabled {
		return resolvedPenalty{}
	}
	return resolvedPenalty{
		enabled:         true,
		specReadiness:   trace.Float("expedite_penalty.spec_readiness", p.SpecReadiness, DefaultSpecReadiness),
		lowThreshold:    trace.Float("expedite_penalty.low_spec_readiness_threshold", p.LowSpecReadinessThreshold, DefaultLowSpecReadinessThreshold),
		exponent:        trace.Float("expedite_penalty.exponent", p.Exponent, DefaultPenaltyExponent),
		haulThresholdKm: trace.Float("expedite_penalty.haul_distance_threshold_km", p.HaulDistanceThresholdKm, DefaultHaulDistanceThresholdKm),
		baseCostUSD:     trace.Float("expedite_penalty.base_cost_penalty_usd", p.BaseCostPenaltyUSD, DefaultBaseCostPenaltyUSD),
		haulCostPerKm:   trace.Float("expedite_penalty.haul_cost_penalty_per_km", p.HaulCostPenaltyPerKm, DefaultHaulCostPenaltyPerKm),
		baseEmissions:   trace.Float("expedite_penalty.base_emissions_penalty_tons_co2e", p.BaseEmissionsPenaltyTonsCO2e, DefaultBaseEmissionsPenaltyTonsCO2e),
		haulEmisPerKm:   trace.Float("expedite_penalty.haul_emissions_penalty_per_km", p.HaulEmissionsPenaltyPerKm, DefaultHaulEmissionsPenaltyPerKm),
	}
}

func (p resolvedPenalty) validate() error {
	if !p.enabled {
		return nil
	}
	if err := units.InUnitInterval("expedite_penalty.spec_readiness", p.specReadiness); err != nil {
		return err
	}
	if err := units.InUnitInterval("expedite_penalty.low_spec_readiness_threshold", p.lowThreshold); err != nil {
		return err
	}
	if p.exponent < 1 {
		return fmt.Errorf("%w: expedite_penalty.exponent must be >= 1 (got %v)", units.ErrInvalidInput, p.exponent)
	}
	if err := units.NonNegative("expedite_penalty.haul_distance_threshold_km", p.haulThresholdKm); err != nil {
		return err
	}
	if err := units.NonNegative("expedite_penalty.base_cost_penalty_usd", p.baseCostUSD); err != nil {
		return err
	}
	if err := units.NonNegative("expedite_penalty.haul_cost_penalty_per_km", p.haulCostPerKm); err != nil {
		return err
	}
	if err := units.NonNegative("expedite_penalty.base_emissions_penalty_tons_co2e", p.baseEmissions); err != nil {
		return err
	}
	return units.NonNegative("expedite_penalty.haul_emissions_penalty_per_km", p.haulEmisPerKm)
}

// apply computes the cost and emissions penalties for one scenario run at
// the given haul distance. Shortfall below the readiness threshold is
// normalized, raised to the configured exponent for a non-linear response,
// and scaled by how far the haul exceeds its threshold.
func (p resolvedPenalty) apply(haulDistanceKm float64) (costUSD, emissionsTonsCO2e float64) {
	if !p.enabled {
		return 0, 0
	}

	shortfall := math.Max(0, p.lowThreshold-p.specReadiness) / math.Max(p.lowThreshold, units.Epsilon)
	readinessFactor := math.Pow(shortfall, p.exponent)

	haulExcessKm := math.Max(0, haulDistanceKm-p.haulThresholdKm)
	haulScale := 1 + haulExcessKm/math.Max(p.haulThresholdKm, 1)

	costUSD = p.baseCostUSD*readinessFactor*haulScale + haulExcessKm*p.haulCostPerKm
	emissionsTonsCO2e = p.baseEmissions*readinessFactor*haulScale + haulExcessKm*p.haulEmisPerKm
	return costUSD, emissionsTonsCO2e
}
