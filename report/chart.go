package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderEquityChart renders the equity curve as a PNG line chart and
// returns the raw image bytes
func RenderEquityChart(title string, points []EquityPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughPoints, len(points))
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i := range points {
		xValues[i] = points[i].Timestamp
		yValues[i] = points[i].Equity.InexactFloat64()
	}

	equitySeries := chart.TimeSeries{
		Name: "Total Equity",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.0,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return chart.TimeFromFloat64(f).Format("02 Jan 06")
				}
				return ""
			},
		},
		Series: []chart.Series{equitySeries},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering equity chart: %w", err)
	}
	return buf.Bytes(), nil
}
