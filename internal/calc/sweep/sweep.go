package sweep

import (
	"math"

	"github.com/pkg/errors"

	"Pumpcalc/internal/calc/pump"
)

const (
	DefaultPoints      = 20
	DefaultMinFlowRate = 0.001 // m^3/s
)

var ErrInvalidPoints = errors.New("Error: A sweep needs at least 2 points.")

type Point struct {
	FlowRate float64 `json:"flow_rate_m3_s"`
	PowerKW  float64 `json:"power_kw"`
}

// Generator samples brake power over a flow range at a fixed density.
// Zero fields take the package defaults; other out-of-range values are
// rejected by Generate.
type Generator struct {
	Points      int
	MinFlowRate float64
	Density     float64
}

func (g Generator) withDefaults() Generator {
	if g.Points == 0 {
		g.Points = DefaultPoints
	}
	if g.MinFlowRate == 0 {
		g.MinFlowRate = DefaultMinFlowRate
	}
	if g.Density == 0 {
		g.Density = pump.DefaultDensity
	}
	return g
}

// Range returns the flow interval a sweep around centerFlowRate covers.
func (g Generator) Range(centerFlowRate float64) (lo, hi float64) {
	g = g.withDefaults()
	return g.MinFlowRate, math.Max(centerFlowRate*1.5, g.MinFlowRate*2)
}

// Generate returns Points evenly spaced samples on
// [MinFlowRate, max(1.5*center, 2*MinFlowRate)], each paired with the brake
// power at the given head and efficiency. The last sample is exactly the
// upper bound.
func (g Generator) Generate(head, efficiency, centerFlowRate float64) ([]Point, error) {
	g = g.withDefaults()
	if g.Points < 2 {
		return nil, ErrInvalidPoints
	}
	if err := (pump.Input{FlowRate: g.MinFlowRate, Head: head, Density: g.Density, Efficiency: efficiency}).Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(centerFlowRate) || math.IsInf(centerFlowRate, 0) || centerFlowRate < 0 {
		return nil, pump.ErrInvalidPhysicalQuantity
	}
	lo, hi := g.Range(centerFlowRate)
	step := (hi - lo) / float64(g.Points-1)

	points := make([]Point, 0, g.Points)
	for i := 0; i < g.Points; i++ {
		q := lo + float64(i)*step
		if i == g.Points-1 {
			q = hi
		}
		res, err := pump.Compute(q, head, g.Density, efficiency)
		if err != nil {
			return nil, errors.Wrapf(err, "sweep point %d", i)
		}
		points = append(points, Point{FlowRate: q, PowerKW: res.BrakePowerKW})
	}
	return points, nil
}

// Generate runs the default generator: 20 points, water.
func Generate(head, efficiency, centerFlowRate float64) ([]Point, error) {
	return Generator{}.Generate(head, efficiency, centerFlowRate)
}
