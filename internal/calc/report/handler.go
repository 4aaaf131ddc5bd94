package report

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/calc/sweep"
	"Pumpcalc/internal/metrics"
)

const tool = "report"

type Handler struct {
	DefaultDensity float64
	Generator      sweep.Generator
	Precision      int
	// Render writes the PDF. Nil means Datasheet.Write.
	Render func(Datasheet, io.Writer) error
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	density := h.DefaultDensity
	if density <= 0 {
		density = pump.DefaultDensity
	}

	sheet, err := Prepare(input, density, h.Generator, h.Precision)
	if err != nil {
		if pump.IsValidationError(err) {
			metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeInvalid)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	metrics.IncreaseCalculationsTotalMetric(tool, metrics.OutcomeOK)

	render := h.Render
	if render == nil {
		render = Datasheet.Write
	}
	var buf bytes.Buffer
	if err := render(sheet, &buf); err != nil {
		zap.S().Errorw("write pump report", "error", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"pump-report.pdf\"")
	if _, err := buf.WriteTo(w); err != nil {
		zap.S().Errorw("send pump report", "error", err)
	}
}
