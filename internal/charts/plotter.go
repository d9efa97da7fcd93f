package charts

import (
	"errors"
	"time"
)

// Kind selects how a chart is drawn
type Kind string

const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
)

// ErrNothingToPlot is returned by a Plotter when a chart has no data
var ErrNothingToPlot = errors.New("chart has no data")

// Point is one time-indexed observation of a series
type Point struct {
	Time  time.Time
	Value float64
}

// Series is a labeled sequence of points for line and scatter charts
type Series struct {
	Name   string
	Points []Point
}

// Bar is one labeled category of a bar chart
type Bar struct {
	Label string
	Value float64
}

// Chart is the labeled data handed to a Plotter
type Chart struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Bars   []Bar
}

// IsEmpty reports whether the chart has anything to draw
func (c Chart) IsEmpty() bool {
	if c.Kind == KindBar {
		return len(c.Bars) == 0
	}
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Plotter renders a chart to an image file at path
type Plotter interface {
	Render(chart Chart, path string) error
}
