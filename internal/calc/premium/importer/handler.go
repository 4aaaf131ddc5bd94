package importer

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/metrics"
)

const (
	tool          = "import"
	MaxUploadSize = 10 << 20 // 10MB
)

type Handler struct {
	DefaultDensity float64
}

func (h *Handler) Pump(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	density := h.DefaultDensity
	if density <= 0 {
		density = pump.DefaultDensity
	}
	res, err := ReadPump(file, density)
	if err != nil {
		zap.S().Debugw("pump import rejected", "error", err)
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	metrics.AddCalculations(tool, metrics.OutcomeOK, res.Count)
	metrics.AddCalculations(tool, metrics.OutcomeInvalid, res.Failed)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		zap.S().Errorw("encode importer response", "error", err)
	}
}
