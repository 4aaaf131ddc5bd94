package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	pumpcalc = "pumpcalc"

	calculationsTotal = "calculations_total"
	sweepPointsTotal  = "sweep_points_total"

	// Labels
	toolLabel    = "tool"
	outcomeLabel = "outcome"

	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
)

var calculationsTotalLabels = []string{
	toolLabel,
	outcomeLabel,
}

var calculationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: pumpcalc,
		Name:      calculationsTotal,
		Help:      "number of calculations served, by tool and outcome",
	},
	calculationsTotalLabels,
)

var sweepPointsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: pumpcalc,
		Name:      sweepPointsTotal,
		Help:      "number of sweep points generated",
	},
)

func IncreaseCalculationsTotalMetric(tool, outcome string) {
	labels := prometheus.Labels{
		toolLabel:    tool,
		outcomeLabel: outcome,
	}
	calculationsTotalMetric.With(labels).Inc()
}

func AddCalculations(tool, outcome string, n int) {
	if n <= 0 {
		return
	}
	labels := prometheus.Labels{
		toolLabel:    tool,
		outcomeLabel: outcome,
	}
	calculationsTotalMetric.With(labels).Add(float64(n))
}

func AddSweepPoints(n int) {
	sweepPointsTotalMetric.Add(float64(n))
}

// CalculationsTotal returns the collector, for tests and custom registries.
func CalculationsTotal() *prometheus.CounterVec {
	return calculationsTotalMetric
}

func SweepPointsTotal() prometheus.Counter {
	return sweepPointsTotalMetric
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(calculationsTotalMetric)
	prometheus.MustRegister(sweepPointsTotalMetric)
}
