package batch

import (
	"github.com/pkg/errors"

	"Pumpcalc/internal/calc/pump"
)

type PumpBatchInput struct {
	Items []pump.Request `json:"items" validate:"required,min=1,max=1000"`
}

type PumpBatchResult struct {
	Results []pump.Result `json:"results"`
}

// CalculatePump computes every item or none: the first invalid item rejects
// the whole batch and its index is reported.
func CalculatePump(in PumpBatchInput, defaultDensity float64) (PumpBatchResult, error) {
	if len(in.Items) == 0 {
		return PumpBatchResult{}, errors.New("no items")
	}
	out := PumpBatchResult{Results: make([]pump.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := pump.Calculate(item.Input(defaultDensity))
		if err != nil {
			return PumpBatchResult{}, errors.Wrapf(err, "item %d", i)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
