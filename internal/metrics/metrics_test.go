package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncreaseCalculationsTotalMetric(t *testing.T) {
	before := testutil.ToFloat64(CalculationsTotal().WithLabelValues("pump", OutcomeOK))

	IncreaseCalculationsTotalMetric("pump", OutcomeOK)
	IncreaseCalculationsTotalMetric("pump", OutcomeOK)

	after := testutil.ToFloat64(CalculationsTotal().WithLabelValues("pump", OutcomeOK))
	assert.Equal(t, before+2, after)
}

func TestAddSweepPoints(t *testing.T) {
	before := testutil.ToFloat64(SweepPointsTotal())
	AddSweepPoints(20)
	assert.Equal(t, before+20, testutil.ToFloat64(SweepPointsTotal()))
}

func TestAddCalculations(t *testing.T) {
	before := testutil.ToFloat64(CalculationsTotal().WithLabelValues("import", OutcomeInvalid))
	AddCalculations("import", OutcomeInvalid, 3)
	AddCalculations("import", OutcomeInvalid, 0)
	assert.Equal(t, before+3, testutil.ToFloat64(CalculationsTotal().WithLabelValues("import", OutcomeInvalid)))
}
