package sweep

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/metrics"
	"Pumpcalc/internal/validator"
)

const tool = "sweep"

type Request struct {
	Head           float64 `json:"head_m"`
	Efficiency     float64 `json:"efficiency"`
	CenterFlowRate float64 `json:"center_flow_rate_m3_s"`
	Points         int     `json:"points" validate:"omitempty,min=2,max=500"`
}

type Response struct {
	Head       float64 `json:"head_m"`
	Efficiency float64 `json:"efficiency"`
	Density    float64 `json:"density_kg_m3"`
	Points     []Point `json:"points"`
}

type Handler struct {
	Generator Generator
	Validator *validator.Validator
}

func NewHandler(g Generator) *Handler {
	return &Handler{Generator: g, Validator: validator.New()}
}

func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	req, points, ok := h.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(Response{
		Head:       req.Head,
		Efficiency: req.Efficiency,
		Density:    h.Generator.withDefaults().Density,
		Points:     points,
	})
	if err != nil {
		zap.S().Errorw("encode sweep response", "error", err)
	}
}

func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	req, points, ok := h.run(w, r)
	if !ok {
		return
	}
	title := fmt.Sprintf("Brake power, H = %g m, η = %g", req.Head, req.Efficiency)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Chart(title, points).Render(w); err != nil {
		zap.S().Errorw("render sweep chart", "error", err)
	}
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) (Request, []Point, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return req, nil, false
	}
	v := h.Validator
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(req); err != nil {
		metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeInvalid)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, nil, false
	}

	g := h.Generator
	if req.Points != 0 {
		g.Points = req.Points
	}
	points, err := g.Generate(req.Head, req.Efficiency, req.CenterFlowRate)
	if err != nil {
		if pump.IsValidationError(err) || errors.Is(err, ErrInvalidPoints) {
			metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeInvalid)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return req, nil, false
		}
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return req, nil, false
	}
	metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeOK)
	metrics.AddSweepPoints(len(points))
	return req, points, true
}
