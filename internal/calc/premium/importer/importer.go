package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"Pumpcalc/internal/calc/pump"
)

type RowResult struct {
	Row    int          `json:"row"`
	Input  pump.Input   `json:"input"`
	Result *pump.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type PumpImportResult struct {
	Count  int         `json:"count"`
	Failed int         `json:"failed"`
	Rows   []RowResult `json:"rows"`
}

// ReadPump reads the first sheet of an xlsx workbook. The first row is a
// header; each following row is: flow (m3/s), head (m), density (kg/m3,
// optional), efficiency. Blank rows are skipped; bad rows are reported.
func ReadPump(r io.Reader, defaultDensity float64) (PumpImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return PumpImportResult{}, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return PumpImportResult{}, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) < 2 {
		return PumpImportResult{}, errors.New("empty sheet")
	}

	out := PumpImportResult{Rows: make([]RowResult, 0, len(rows)-1)}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		rr := RowResult{Row: i + 1}
		in, err := parsePumpRow(row, defaultDensity)
		if err != nil {
			rr.Error = err.Error()
			out.Failed++
			out.Rows = append(out.Rows, rr)
			continue
		}
		rr.Input = in
		res, err := pump.Calculate(in)
		if err != nil {
			rr.Error = err.Error()
			out.Failed++
			out.Rows = append(out.Rows, rr)
			continue
		}
		rr.Result = &res
		out.Count++
		out.Rows = append(out.Rows, rr)
	}
	return out, nil
}

func parsePumpRow(row []string, defaultDensity float64) (pump.Input, error) {
	if len(row) < 4 {
		return pump.Input{}, errors.New("bad row: expected flow, head, density, efficiency")
	}
	flow, err := toFloat(row[0])
	if err != nil {
		return pump.Input{}, errors.Wrap(err, "flow")
	}
	head, err := toFloat(row[1])
	if err != nil {
		return pump.Input{}, errors.Wrap(err, "head")
	}
	density := defaultDensity
	if strings.TrimSpace(row[2]) != "" {
		density, err = toFloat(row[2])
		if err != nil {
			return pump.Input{}, errors.Wrap(err, "density")
		}
	}
	eff, err := toFloat(row[3])
	if err != nil {
		return pump.Input{}, errors.Wrap(err, "efficiency")
	}
	return pump.Input{FlowRate: flow, Head: head, Density: density, Efficiency: eff}, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
