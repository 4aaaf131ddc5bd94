package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"

	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/calc/sweep"
)

type Input struct {
	Project string       `json:"project"`
	Author  string       `json:"author"`
	Title   string       `json:"title"`
	Notes   string       `json:"notes"`
	Duty    pump.Request `json:"input"`
	Date    time.Time    `json:"-"`
}

// Datasheet is a computed pump duty ready to be written out.
type Datasheet struct {
	Input
	Pump      pump.Input
	Result    pump.Result
	Sweep     []sweep.Point
	Precision int
}

// Prepare runs the calculator and the sweep for the report's duty point. The
// sweep uses the duty fluid rather than water. A negative precision selects
// pump.DefaultPrecision.
func Prepare(in Input, defaultDensity float64, g sweep.Generator, precision int) (Datasheet, error) {
	if in.Title == "" {
		in.Title = "Pump Power Datasheet"
	}
	if precision < 0 {
		precision = pump.DefaultPrecision
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	p := in.Duty.Input(defaultDensity)
	res, err := pump.Calculate(p)
	if err != nil {
		return Datasheet{}, err
	}
	g.Density = p.Density
	points, err := g.Generate(p.Head, p.Efficiency, p.FlowRate)
	if err != nil {
		return Datasheet{}, errors.Wrap(err, "sweep")
	}
	return Datasheet{Input: in, Pump: p, Result: res, Sweep: points, Precision: precision}, nil
}

func (d Datasheet) Write(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(d.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", d.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", d.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", d.Date.Format("2006-01-02")))
	pdf.Ln(10)

	hyd, brake := d.Result.Format(d.Precision)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Duty point")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Flow rate Q", fmt.Sprintf("%g m3/s", d.Pump.FlowRate)},
		{"Head H", fmt.Sprintf("%g m", d.Pump.Head)},
		{"Fluid density", fmt.Sprintf("%g kg/m3", d.Pump.Density)},
		{"Pump efficiency", fmt.Sprintf("%g", d.Pump.Efficiency)},
		{"Hydraulic power", hyd},
		{"Brake power", brake},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Power curve")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 6, "Q, m3/s", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Brake power, kW", "1", 1, "C", false, 0, "")
	for _, p := range d.Sweep {
		pdf.CellFormat(60, 6, fmt.Sprintf("%.4f", p.FlowRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 6, fmt.Sprintf("%.*f", d.Precision, p.PowerKW), "1", 1, "R", false, 0, "")
	}

	if d.Notes != "" {
		pdf.Ln(6)
		pdf.MultiCell(0, 6, tr(d.Notes), "", "L", false)
	}
	return pdf.Output(w)
}
