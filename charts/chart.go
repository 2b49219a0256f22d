// Package charts holds chart-ready series and renders them as Plotly figures
// for the dashboard page.
package charts

import (
	"html/template"

	"github.com/goccy/go-json"
)

type Kind string

const (
	Bar  Kind = "bar"
	Pie  Kind = "pie"
	Line Kind = "line"
)

// Point is one (category, count) pair of a frequency distribution.
type Point struct {
	Label string
	Count int
}

type Chart struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Points []Point
}

func (c *Chart) Labels() []string {
	labels := make([]string, len(c.Points))
	for i, p := range c.Points {
		labels[i] = p.Label
	}
	return labels
}

func (c *Chart) Counts() []int {
	counts := make([]int, len(c.Points))
	for i, p := range c.Points {
		counts[i] = p.Count
	}
	return counts
}

// Figure is the JSON shape Plotly.newPlot accepts.
type Figure struct {
	Data   []map[string]interface{} `json:"data"`
	Layout map[string]interface{}   `json:"layout"`
}

// PlotlyFigure builds a single-trace figure for the chart.
func (c *Chart) PlotlyFigure() Figure {
	var trace map[string]interface{}
	switch c.Kind {
	case Pie:
		trace = map[string]interface{}{
			"type":   "pie",
			"labels": c.Labels(),
			"values": c.Counts(),
		}
	case Line:
		trace = map[string]interface{}{
			"type": "scatter",
			"mode": "lines+markers",
			"x":    c.Labels(),
			"y":    c.Counts(),
		}
	default:
		trace = map[string]interface{}{
			"type": "bar",
			"x":    c.Labels(),
			"y":    c.Counts(),
		}
	}

	layout := map[string]interface{}{
		"title": map[string]string{"text": c.Title},
	}
	if c.Kind != Pie {
		layout["xaxis"] = map[string]interface{}{"title": map[string]string{"text": c.XLabel}, "type": "category"}
		layout["yaxis"] = map[string]interface{}{"title": map[string]string{"text": c.YLabel}}
	}
	return Figure{Data: []map[string]interface{}{trace}, Layout: layout}
}

// PlotlyJSON renders the figure for embedding in a page script. A nil chart
// renders as an empty payload.
func (c *Chart) PlotlyJSON() (template.JS, error) {
	if c == nil {
		return "", nil
	}
	b, err := json.Marshal(c.PlotlyFigure())
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
