package explain

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderBarChart writes the contribution weights as a bar chart. Positive
// bars push the prediction toward the explained label, negative away.
func RenderBarChart(res *Result, title, path string) error {
	if res == nil || len(res.Contributions) == 0 {
		return fmt.Errorf("explain: nothing to render")
	}

	vals := make(plotter.Values, len(res.Contributions))
	names := make([]string, len(res.Contributions))
	for i, c := range res.Contributions {
		vals[i] = c.Weight
		names[i] = c.Feature
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "contribution weight"

	bars, err := plotter.NewBarChart(vals, vg.Points(24))
	if err != nil {
		return fmt.Errorf("explain: building bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("explain: saving chart: %w", err)
	}
	return nil
}
