// trend.go
package plot

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawClicksTrend renders daily click totals as a bar chart PNG, one
// bar per calendar day in ascending order.
func DrawClicksTrend(days []time.Time, clicks []float64) ([]byte, error) {
	if len(days) == 0 || len(days) != len(clicks) {
		return nil, fmt.Errorf("trend needs matching day/click values, got %d/%d", len(days), len(clicks))
	}

	var bars []chart.Value
	for i := range days {
		bars = append(bars, chart.Value{
			Value: clicks[i],
			Label: days[i].Format("2006-01-02"),
		})
	}

	graph := chart.BarChart{
		Title: "Clicks by Day",
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorBlue,
		},
		Height:   640,
		Width:    1024,
		BarWidth: 30,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "Clicks",
		},
	}
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering trend chart: %v", err)
	}

	return buffer.Bytes(), nil
}
