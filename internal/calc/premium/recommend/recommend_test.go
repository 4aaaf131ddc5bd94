package recommend

import (
	"encoding/json"
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

func TestMotorSize(t *testing.T) {
	res, err := MotorSize(MotorRecommendInput{
		Duty: pump.Request{FlowRate: 0.01, Head: 20, Efficiency: 0.7},
	}, pump.DefaultDensity)
	require.NoError(t, err)

	// 2.803 kW * 1.15 = 3.223 kW
	assert.InDelta(t, 3.2233, res.RequiredPowerKW, 1e-3)
	assert.Equal(t, 4.0, res.MotorRatingKW)
}

func TestMotorSize_ExactRating(t *testing.T) {
	// hydraulic 3 kW at unit efficiency and unit service factor
	res, err := MotorSize(MotorRecommendInput{
		Duty:          pump.Request{FlowRate: 3.0 / 9.81 / 100, Head: 1000, Efficiency: 1},
		ServiceFactor: 1,
	}, pump.DefaultDensity)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.BrakePowerKW, 1e-9)
	assert.GreaterOrEqual(t, res.MotorRatingKW, res.RequiredPowerKW)
}

func TestMotorSize_Errors(t *testing.T) {
	_, err := MotorSize(MotorRecommendInput{
		Duty: pump.Request{FlowRate: 0.01, Head: 20, Efficiency: 0},
	}, pump.DefaultDensity)
	assert.True(t, errors.Is(err, pump.ErrInvalidEfficiency))

	_, err = MotorSize(MotorRecommendInput{
		Duty: pump.Request{FlowRate: 10, Head: 100, Efficiency: 0.5},
	}, pump.DefaultDensity)
	assert.True(t, errors.Is(err, ErrNoStandardMotor))
}

func TestHandler_Motor(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodPost, "/api/premium/pump/motor",
		strings.NewReader(`{"input":{"flow_rate_m3_s":0.05,"head_m":20,"efficiency":0.7},"service_factor":1.1}`))
	rec := httptest.NewRecorder()
	h.Motor(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var res MotorRecommendResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 18.5, res.MotorRatingKW)

	req = httptest.NewRequest(http.MethodPost, "/api/premium/pump/motor",
		strings.NewReader(`{"input":{"flow_rate_m3_s":0.05,"head_m":20,"efficiency":0.7},"service_factor":5}`))
	rec = httptest.NewRecorder()
	h.Motor(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/premium/pump/motor",
		strings.NewReader(`{"input":{"flow_rate_m3_s":10,"head_m":100,"efficiency":0.5}}`))
	rec = httptest.NewRecorder()
	h.Motor(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandler_MotorCountsValidatorRejections(t *testing.T) {
	invalid := metrics.CalculationsTotal().WithLabelValues(tool, metrics.OutcomeInvalid)
	before := testutil.ToFloat64(invalid)

	req := httptest.NewRequest(http.MethodPost, "/api/premium/pump/motor", strings.NewReader(`{"input":{"flow_rate_m3_s":0.05,"head_m":20,"efficiency":0.7},"service_factor":5}`))
	rec := httptest.NewRecorder()
	(&Handler{}).Motor(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(invalid))
}
