package sweep

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart builds a power-versus-flow line chart for the given points.
func Chart(title string, points []Point) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Q, m³/s",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "P, kW",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	flows := make([]string, 0, len(points))
	powers := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		flows = append(flows, fmt.Sprintf("%.4f", p.FlowRate))
		powers = append(powers, opts.LineData{Value: p.PowerKW})
	}

	line = line.SetXAxis(flows).AddSeries("Brake power", powers)
	line.SetSeriesOptions(charts.WithLineChartOpts(
		opts.LineChart{
			Smooth: opts.Bool(true),
		}),
	)
	return line
}
