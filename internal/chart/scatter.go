// internal/chart/scatter.go
package chart

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/cluster"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
)

// boldPalette is the plotly qualitative Bold palette the dashboard has always
// used; series colors wrap around when k exceeds it.
var boldPalette = []string{
	"#7F3C8D", "#11A579", "#3969AC", "#F2B701",
	"#E73F74", "#80BA5A", "#E68310", "#008695",
	"#CF1C90", "#F97B72", "#4B4B8F", "#A5AA99",
}

// Spec is a plotly-compatible figure: marshal it and hand it to
// Plotly.newPlot on the client. Field names follow the plotly schema.
type Spec struct {
	Data   []Series `json:"data"`
	Layout Layout   `json:"layout"`
}

// Series is one scatter trace, one per cluster.
type Series struct {
	Name   string    `json:"name"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Mode   string    `json:"mode"`
	Type   string    `json:"type"`
	Text   []string  `json:"text,omitempty"`
	Marker Marker    `json:"marker"`
}

type Marker struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// Title uses the object form ({"text": ...}) required by plotly v2.
type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title Title `json:"title"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Layout struct {
	Title        Title  `json:"title"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
	Height       int    `json:"height"`
	PaperBgColor string `json:"paper_bgcolor"`
	PlotBgColor  string `json:"plot_bgcolor"`
	Margin       Margin `json:"margin"`
}

// BuildScatter lays out one trace per non-empty cluster, plotting the raw
// (not standardized) feature values, with transparent backgrounds so the
// figure sits on the page's own card styling.
func BuildScatter(assignments []model.Assignment, pair cluster.FeaturePair) Spec {
	groups := make(map[int][]model.Assignment)
	for _, a := range assignments {
		groups[a.ClusterID] = append(groups[a.ClusterID], a)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	data := make([]Series, 0, len(ids))
	for i, id := range ids {
		members := groups[id]
		s := Series{
			Name:   fmt.Sprintf("Cluster %d", id),
			X:      make([]float64, 0, len(members)),
			Y:      make([]float64, 0, len(members)),
			Text:   make([]string, 0, len(members)),
			Mode:   "markers",
			Type:   "scatter",
			Marker: Marker{Color: boldPalette[i%len(boldPalette)], Size: 8},
		}
		for _, a := range members {
			x, y := pair.Extract(a.Customer)
			s.X = append(s.X, x)
			s.Y = append(s.Y, y)
			s.Text = append(s.Text, fmt.Sprintf("Customer %d (%s, age %.0f)", a.Customer.ID, a.Customer.Gender, a.Customer.Age))
		}
		data = append(data, s)
	}

	xLabel, yLabel := pair.Axes()
	return Spec{
		Data: data,
		Layout: Layout{
			Title:        Title{Text: pair.Title()},
			XAxis:        Axis{Title: Title{Text: xLabel}},
			YAxis:        Axis{Title: Title{Text: yLabel}},
			Height:       500,
			PaperBgColor: "rgba(0,0,0,0)",
			PlotBgColor:  "rgba(0,0,0,0)",
			Margin:       Margin{L: 20, R: 20, T: 40, B: 20},
		},
	}
}

// JSON renders the figure for embedding in a page. json.Marshal escapes <, >
// and &, so the output is safe inside a <script> block.
func (s Spec) JSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal chart spec: %w", err)
	}
	return string(b), nil
}
