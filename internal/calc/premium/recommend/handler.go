package recommend

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/metrics"
	"Pumpcalc/internal/validator"
)

const tool = "motor"

type Handler struct {
	DefaultDensity float64
	Validator      *validator.Validator
}

func (h *Handler) Motor(w http.ResponseWriter, r *http.Request) {
	var input MotorRecommendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	v := h.Validator
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(input); err != nil {
		metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeInvalid)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	density := h.DefaultDensity
	if density <= 0 {
		density = pump.DefaultDensity
	}

	res, err := MotorSize(input, density)
	switch {
	case err == nil:
	case pump.IsValidationError(err):
		metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeInvalid)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrNoStandardMotor):
		metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeRejected)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	default:
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeOK)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		zap.S().Errorw("encode recommend response", "error", err)
	}
}
