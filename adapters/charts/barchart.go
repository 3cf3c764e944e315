package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"telemarketing/domain/dataset"
	"telemarketing/internal/errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// BarChartRenderer draws outcome distributions as percentage bar charts
type BarChartRenderer struct {
	Width    int
	Height   int
	BarWidth int
	AxisName string
	Color    drawing.Color
}

// NewBarChartRenderer returns a renderer sized for two charts side by side
func NewBarChartRenderer() *BarChartRenderer {
	return &BarChartRenderer{
		Width:    480,
		Height:   360,
		BarWidth: 60,
		AxisName: "Percent",
		Color:    chart.ColorBlue,
	}
}

// RenderPNG draws dist with its values on the x axis and percentages on the y axis.
func (r *BarChartRenderer) RenderPNG(title string, dist dataset.OutcomeDistribution) ([]byte, error) {
	if dist.IsEmpty() {
		return nil, errors.EmptyResult(fmt.Sprintf("nothing to plot for %q", title))
	}

	bars := make([]chart.Value, len(dist.Shares))
	for i, share := range dist.Shares {
		bars[i] = chart.Value{
			Label: share.Value,
			Value: share.Percent,
			Style: chart.Style{
				FillColor:   r.Color,
				StrokeColor: r.Color,
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   r.BarWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  r.AxisName,
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrapf(err, "failed to render chart %q", title)
	}
	return buf.Bytes(), nil
}

// RenderDataURI renders the chart as an inline base64 PNG URI.
func (r *BarChartRenderer) RenderDataURI(title string, dist dataset.OutcomeDistribution) (string, error) {
	png, err := r.RenderPNG(title, dist)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
