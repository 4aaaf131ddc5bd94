package autodesign

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/metrics"
)

func TestMaxFlow_RoundTrip(t *testing.T) {
	res, err := MaxFlow(MaxFlowInput{MotorKW: 14.014285714, Head: 20, Efficiency: 0.7}, pump.DefaultDensity)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, res.MaxFlowRate, 1e-9)
	assert.InDelta(t, 180, res.MaxFlowM3H, 1e-6)
	assert.InDelta(t, 14.014285714, res.BrakePowerKW, 1e-9)
}

func TestMaxFlow_Density(t *testing.T) {
	oil := 800.0
	res, err := MaxFlow(MaxFlowInput{MotorKW: 4, Head: 30, Efficiency: 0.6, Density: &oil}, pump.DefaultDensity)
	require.NoError(t, err)
	assert.InDelta(t, 4, res.BrakePowerKW, 1e-9)

	water, err := MaxFlow(MaxFlowInput{MotorKW: 4, Head: 30, Efficiency: 0.6}, pump.DefaultDensity)
	require.NoError(t, err)
	assert.Greater(t, res.MaxFlowRate, water.MaxFlowRate)
}

func TestMaxFlow_Errors(t *testing.T) {
	_, err := MaxFlow(MaxFlowInput{MotorKW: 4, Head: 30, Efficiency: 0}, pump.DefaultDensity)
	assert.True(t, errors.Is(err, pump.ErrInvalidEfficiency))

	_, err = MaxFlow(MaxFlowInput{MotorKW: 4, Head: 0, Efficiency: 0.7}, pump.DefaultDensity)
	assert.True(t, errors.Is(err, pump.ErrInvalidPhysicalQuantity))
	assert.EqualError(t, err, "Error: Flow rate, head, and density must be positive values.")

	_, err = MaxFlow(MaxFlowInput{MotorKW: -4, Head: 10, Efficiency: 0.7}, pump.DefaultDensity)
	assert.True(t, errors.Is(err, pump.ErrInvalidPhysicalQuantity))
}

func TestHandler_MaxFlow(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodPost, "/api/premium/pump/max-flow",
		strings.NewReader(`{"motor_kw":7.5,"head_m":20,"efficiency":0.7}`))
	rec := httptest.NewRecorder()
	h.MaxFlow(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/premium/pump/max-flow",
		strings.NewReader(`{"motor_kw":0,"head_m":20,"efficiency":0.7}`))
	rec = httptest.NewRecorder()
	h.MaxFlow(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MaxFlowCountsValidatorRejections(t *testing.T) {
	invalid := metrics.CalculationsTotal().WithLabelValues(tool, metrics.OutcomeInvalid)
	before := testutil.ToFloat64(invalid)

	req := httptest.NewRequest(http.MethodPost, "/api/premium/pump/max-flow", strings.NewReader(`{"motor_kw":0,"head_m":20,"efficiency":0.7}`))
	rec := httptest.NewRecorder()
	(&Handler{}).MaxFlow(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(invalid))
}
