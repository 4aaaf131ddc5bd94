package pump

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"Pumpcalc/internal/metrics"
)

const tool = "pump"

// Request is the wire form of Input. Density may be omitted, in which case
// the handler's default applies; an explicit zero is still rejected.
type Request struct {
	FlowRate   float64  `json:"flow_rate_m3_s"`
	Head       float64  `json:"head_m"`
	Density    *float64 `json:"density_kg_m3,omitempty"`
	Efficiency float64  `json:"efficiency"`
}

func (r Request) Input(defaultDensity float64) Input {
	density := defaultDensity
	if r.Density != nil {
		density = *r.Density
	}
	return Input{
		FlowRate:   r.FlowRate,
		Head:       r.Head,
		Density:    density,
		Efficiency: r.Efficiency,
	}
}

type Response struct {
	Input     Input  `json:"input"`
	Result    Result `json:"result"`
	Hydraulic string `json:"hydraulic_power"`
	Brake     string `json:"brake_power"`
}

// Handler serves the calculator over HTTP. A negative Precision selects
// DefaultPrecision; zero prints whole kilowatts.
type Handler struct {
	Calc           Func
	DefaultDensity float64
	Precision      int
}

func NewHandler(defaultDensity float64, precision int) *Handler {
	return &Handler{Calc: Calculate, DefaultDensity: defaultDensity, Precision: precision}
}

func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	precision, err := PrecisionParam(r, h.precision())
	if err != nil {
		http.Error(w, "Invalid precision", http.StatusBadRequest)
		return
	}

	in := req.Input(h.density())
	res, err := h.calc()(in)
	if err != nil {
		if IsValidationError(err) {
			metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeInvalid)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeOK)

	hyd, brake := res.Format(precision)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Response{Input: in, Result: res, Hydraulic: hyd, Brake: brake}); err != nil {
		zap.S().Errorw("encode pump response", "error", err)
	}
}

// PrecisionParam reads ?precision=N (0..10) from the request.
func PrecisionParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("precision")
	if raw == "" {
		return def, nil
	}
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if p < 0 || p > 10 {
		return 0, strconv.ErrRange
	}
	return p, nil
}

func (h *Handler) calc() Func {
	if h.Calc == nil {
		return Calculate
	}
	return h.Calc
}

func (h *Handler) density() float64 {
	if h.DefaultDensity <= 0 {
		return DefaultDensity
	}
	return h.DefaultDensity
}

func (h *Handler) precision() int {
	if h.Precision < 0 {
		return DefaultPrecision
	}
	return h.Precision
}
