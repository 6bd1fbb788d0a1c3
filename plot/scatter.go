// scatter.go
package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawCTRPositionScatter renders the CTR-vs-position scatter as a
// PNG. One point per row; positions on X (1 is best), ctr percentage
// on Y. Rows with a missing value in either coordinate must be
// filtered out by the caller.
func DrawCTRPositionScatter(positions []float64, ctrs []float64) ([]byte, error) {
	if len(positions) == 0 || len(positions) != len(ctrs) {
		return nil, fmt.Errorf("scatter needs matching position/ctr values, got %d/%d", len(positions), len(ctrs))
	}

	series := chart.ContinuousSeries{
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    4,
			DotColor:    drawing.ColorBlue.WithAlpha(128),
		},
		XValues: positions,
		YValues: ctrs,
	}

	graph := chart.Chart{
		Title: "CTR vs Position",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:  1024,
		Height: 640,
		XAxis: chart.XAxis{
			Name: "Average Position",
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.1f", vf)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "CTR (%)",
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.2f", vf)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}

	return buffer.Bytes(), nil
}
