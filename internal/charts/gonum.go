package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// GonumPlotter renders charts with gonum/plot. The image format follows the
// file extension of the target path.
type GonumPlotter struct {
	Width  vg.Length
	Height vg.Length
}

// NewGonumPlotter returns a plotter producing 8x4 inch images
func NewGonumPlotter() *GonumPlotter {
	return &GonumPlotter{Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

// Render draws chart and saves it to path
func (g *GonumPlotter) Render(chart Chart, path string) error {
	if chart.IsEmpty() {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel
	p.Legend.Top = true

	var err error
	switch chart.Kind {
	case KindLine, KindScatter:
		err = g.addSeries(p, chart)
	case KindBar:
		err = g.addBars(p, chart)
	default:
		err = fmt.Errorf("unsupported chart kind %q", chart.Kind)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := p.Save(g.Width, g.Height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

func (g *GonumPlotter) addSeries(p *plot.Plot, chart Chart) error {
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	for i, s := range chart.Series {
		if len(s.Points) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(pt.Time.Unix())
			xys[j].Y = pt.Value
		}

		if chart.Kind == KindLine {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("line %s: %w", s.Name, err)
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s.Name, line)
			continue
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("scatter %s: %w", s.Name, err)
		}
		scatter.GlyphStyle.Color = plotutil.Color(i)
		p.Add(scatter)
		if len(chart.Series) > 1 {
			p.Legend.Add(s.Name, scatter)
		}
	}
	return nil
}

func (g *GonumPlotter) addBars(p *plot.Plot, chart Chart) error {
	values := make(plotter.Values, len(chart.Bars))
	labels := make([]string, len(chart.Bars))
	for i, b := range chart.Bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	return nil
}
