package market

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/realticker/internal/models"
)

// RenderHistoryChart renders a PNG line chart of a history series.
// Two series: Close (blue solid) and the High/Low band edges (gray dashed).
// Returns raw PNG bytes.
func RenderHistoryChart(history *models.StockHistory) ([]byte, error) {
	if history == nil || len(history.HistoricalData) < 2 {
		n := 0
		if history != nil {
			n = len(history.HistoricalData)
		}
		return nil, fmt.Errorf("need at least 2 data points, got %d", n)
	}

	points := history.HistoricalData
	xValues := make([]time.Time, len(points))
	closeY := make([]float64, len(points))
	highY := make([]float64, len(points))
	lowY := make([]float64, len(points))

	for i, p := range points {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q at index %d: %w", p.Date, i, err)
		}
		xValues[i] = d
		closeY[i] = p.Close
		highY[i] = p.High
		lowY[i] = p.Low
	}

	bandStyle := chart.Style{
		StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
		StrokeWidth:     1.0,
		StrokeDashArray: []float64{4.0, 3.0},
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s - %s", history.Ticker, history.CompanyName),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Close",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
					StrokeWidth: 2.0,
				},
				XValues: xValues,
				YValues: closeY,
			},
			chart.TimeSeries{Name: "High", Style: bandStyle, XValues: xValues, YValues: highY},
			chart.TimeSeries{Name: "Low", Style: bandStyle, XValues: xValues, YValues: lowY},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
