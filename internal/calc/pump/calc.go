package pump

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const (
	// G is the gravitational acceleration, m/s^2.
	G = 9.81
	// DefaultDensity is water at ambient temperature, kg/m^3.
	DefaultDensity = 1000.0
	// DefaultPrecision is the number of decimals used when formatting powers.
	DefaultPrecision = 3
)

var (
	ErrInvalidEfficiency       = errors.New("Error: Efficiency must be between 0 and 1.")
	ErrInvalidPhysicalQuantity = errors.New("Error: Flow rate, head, and density must be positive values.")
)

type Input struct {
	FlowRate   float64 `json:"flow_rate_m3_s"`
	Head       float64 `json:"head_m"`
	Density    float64 `json:"density_kg_m3"`
	Efficiency float64 `json:"efficiency"`
}

type Result struct {
	HydraulicPowerKW float64 `json:"hydraulic_power_kw"`
	BrakePowerKW     float64 `json:"brake_power_kw"`
}

// Func is the shape of a pump power computation. Handlers hold one so the
// calculation can be swapped without touching the transport.
type Func func(Input) (Result, error)

// Validate checks the efficiency first, then the physical quantities.
func (in Input) Validate() error {
	if math.IsNaN(in.Efficiency) || in.Efficiency <= 0 || in.Efficiency > 1 {
		return ErrInvalidEfficiency
	}
	if !finite(in.FlowRate) || !finite(in.Head) || !finite(in.Density) ||
		in.FlowRate < 0 || in.Head < 0 || in.Density <= 0 {
		return ErrInvalidPhysicalQuantity
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	hydraulicW := in.Density * G * in.FlowRate * in.Head
	brakeW := hydraulicW / in.Efficiency
	// Finite inputs can still overflow.
	if !finite(hydraulicW) || !finite(brakeW) {
		return Result{}, ErrInvalidPhysicalQuantity
	}

	return Result{
		HydraulicPowerKW: hydraulicW / 1000.0,
		BrakePowerKW:     brakeW / 1000.0,
	}, nil
}

func Compute(flowRate, head, density, efficiency float64) (Result, error) {
	return Calculate(Input{
		FlowRate:   flowRate,
		Head:       head,
		Density:    density,
		Efficiency: efficiency,
	})
}

// ComputeWithDefaultDensity is the single-output form used for charts: the
// fluid is assumed to be water.
func ComputeWithDefaultDensity(flowRate, head, efficiency float64) (Result, error) {
	return Compute(flowRate, head, DefaultDensity, efficiency)
}

// Format renders both powers as "<value> kW" with the given number of decimals.
// A negative precision falls back to DefaultPrecision.
func (r Result) Format(precision int) (hydraulic, brake string) {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return fmt.Sprintf("%.*f kW", precision, r.HydraulicPowerKW),
		fmt.Sprintf("%.*f kW", precision, r.BrakePowerKW)
}

// IsValidationError reports whether err comes from input bounds checking.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEfficiency) || errors.Is(err, ErrInvalidPhysicalQuantity)
}
