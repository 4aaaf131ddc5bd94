package autodesign

import (
	"math"

	"Pumpcalc/internal/calc/pump"
)

type MaxFlowInput struct {
	MotorKW    float64  `json:"motor_kw" validate:"gt=0"`
	Head       float64  `json:"head_m"`
	Efficiency float64  `json:"efficiency"`
	Density    *float64 `json:"density_kg_m3,omitempty"`
}

type MaxFlowResult struct {
	MaxFlowRate  float64 `json:"max_flow_rate_m3_s"`
	MaxFlowM3H   float64 `json:"max_flow_m3_h"`
	BrakePowerKW float64 `json:"brake_power_kw"`
	Notes        string  `json:"notes"`
}

// MaxFlow inverts the brake power formula: the largest flow a motor of the
// given shaft rating can drive against head at the stated efficiency.
func MaxFlow(in MaxFlowInput, defaultDensity float64) (MaxFlowResult, error) {
	density := defaultDensity
	if in.Density != nil {
		density = *in.Density
	}
	duty := pump.Input{Head: in.Head, Density: density, Efficiency: in.Efficiency}
	if err := duty.Validate(); err != nil {
		return MaxFlowResult{}, err
	}
	if in.Head == 0 || math.IsNaN(in.MotorKW) || in.MotorKW <= 0 || math.IsInf(in.MotorKW, 0) {
		return MaxFlowResult{}, pump.ErrInvalidPhysicalQuantity
	}

	q := in.MotorKW * 1000.0 * in.Efficiency / (density * pump.G * in.Head)
	duty.FlowRate = q
	res, err := pump.Calculate(duty)
	if err != nil {
		return MaxFlowResult{}, err
	}
	return MaxFlowResult{
		MaxFlowRate:  q,
		MaxFlowM3H:   q * 3600,
		BrakePowerKW: res.BrakePowerKW,
		Notes:        "Flow at which brake power equals the motor rating.",
	}, nil
}
