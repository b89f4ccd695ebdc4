package render

import (
	"fmt"
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"careval/pkg/data"
	"careval/pkg/stats"
)

// newPlot applies the shared style to an empty plot.
func (r *Renderer) newPlot(title, xLabel, yLabel string) *plot.Plot {
	size := vg.Points(r.cfg.FontSize)

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = size * 1.25
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = size / 2

	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = size
	p.Y.Label.TextStyle.Font.Size = size
	p.X.Tick.Label.Font.Size = size * 0.9
	p.Y.Tick.Label.Font.Size = size * 0.9
	p.Legend.TextStyle.Font.Size = size

	if r.cfg.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = color.Gray{Y: 220}
		g.Horizontal.Color = color.Gray{Y: 220}
		p.Add(g)
	}
	return p
}

// barWidth splits the plotting width evenly over n categories, leaving a
// gap between neighbouring bars.
func (r *Renderer) barWidth(n int) vg.Length {
	if n < 1 {
		n = 1
	}
	return vg.Length(r.cfg.Width) * vg.Inch * 0.6 / vg.Length(n+1)
}

// countLabels annotates each bar with its count, centered above it.
func (r *Renderer) countLabels(counts []stats.Count) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(counts))
	strs := make([]string, len(counts))
	for i, c := range counts {
		xys[i] = plotter.XY{X: float64(i), Y: float64(c.N)}
		strs[i] = fmt.Sprint(c.N)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: strs})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(r.cfg.FontSize)
	}
	labels.Offset = vg.Point{Y: vg.Points(r.cfg.FontSize / 2)}
	return labels, nil
}

func maxCount(counts []stats.Count) int {
	m := 0
	for _, c := range counts {
		m = max(m, c.N)
	}
	return m
}

// classDistribution draws one bar per class level, colored by class.
func (r *Renderer) classDistribution(t *data.Table) (*plot.Plot, error) {
	class, err := t.Strings(data.ColClass)
	if err != nil {
		return nil, err
	}
	counts := stats.CountsInOrder(class, data.ClassLevels)
	colors, err := Colors(r.cfg.Palette, len(counts))
	if err != nil {
		return nil, err
	}

	p := r.newPlot(ClassDistribution.Title(), "Class", "Count")
	w := r.barWidth(len(counts))
	for i, c := range counts {
		bars, err := plotter.NewBarChart(plotter.Values{float64(c.N)}, w)
		if err != nil {
			return nil, err
		}
		bars.XMin = float64(i)
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	labels, err := r.countLabels(counts)
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	p.NominalX(data.ClassLevels...)
	p.Y.Min = 0
	p.Y.Max = float64(maxCount(counts))*1.15 + 1
	return p, nil
}

// safetyVsClass stacks the class counts on each safety level.
func (r *Renderer) safetyVsClass(t *data.Table) (*plot.Plot, error) {
	safety, err := t.Strings(data.ColSafety)
	if err != nil {
		return nil, err
	}
	class, err := t.Strings(data.ColClass)
	if err != nil {
		return nil, err
	}
	ct, err := stats.NewCrossTab(safety, class, data.SafetyLevels, data.ClassLevels)
	if err != nil {
		return nil, err
	}
	colors, err := Colors(r.cfg.Palette, len(ct.ColLabels))
	if err != nil {
		return nil, err
	}

	p := r.newPlot(SafetyVsClass.Title(), "Safety", "Count")
	p.Legend.Top = true
	p.Legend.Add("Class")

	var below *plotter.BarChart
	for j, label := range ct.ColLabels {
		bars, err := plotter.NewBarChart(plotter.Values(ct.Column(label)), r.barWidth(len(ct.RowLabels)))
		if err != nil {
			return nil, err
		}
		bars.Color = colors[j]
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(label, bars)
		below = bars
	}
	p.NominalX(ct.RowLabels...)
	p.Y.Min = 0
	return p, nil
}

// luggageDistribution is a discrete histogram over the boot sizes.
func (r *Renderer) luggageDistribution(t *data.Table) (*plot.Plot, error) {
	lug, err := t.Strings(data.ColLugBoot)
	if err != nil {
		return nil, err
	}
	counts := stats.CountsInOrder(lug, data.LugBootSizes)
	colors, err := Colors(r.cfg.Palette, 3)
	if err != nil {
		return nil, err
	}

	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		values[i] = float64(c.N)
	}
	p := r.newPlot(LuggageDistribution.Title(), "Lug Boot", "Count")
	bars, err := plotter.NewBarChart(values, r.barWidth(len(counts)))
	if err != nil {
		return nil, err
	}
	bars.Color = colors[1]
	p.Add(bars)
	p.NominalX(data.LugBootSizes...)
	p.Y.Min = 0
	return p, nil
}

// buyingVsMaint scatters the encoded prices, one series per class.
func (r *Renderer) buyingVsMaint(t *data.Table) (*plot.Plot, error) {
	buying, err := t.Ints(data.ColBuyingEncoded)
	if err != nil {
		return nil, err
	}
	maint, err := t.Ints(data.ColMaintEncoded)
	if err != nil {
		return nil, err
	}
	class, err := t.Strings(data.ColClass)
	if err != nil {
		return nil, err
	}
	colors, err := Colors(r.cfg.Palette, len(data.ClassLevels))
	if err != nil {
		return nil, err
	}

	p := r.newPlot(BuyingVsMaint.Title(),
		"Buying Price (1=Low to 4=VHigh)", "Maintenance Cost (1=Low to 4=VHigh)")
	p.Legend.Top = true
	p.Legend.Add("Class")

	byClass := make(map[string]plotter.XYs, len(data.ClassLevels))
	for i, c := range class {
		byClass[c] = append(byClass[c], plotter.XY{X: float64(buying[i]), Y: float64(maint[i])})
	}
	for j, label := range data.ClassLevels {
		pts := byClass[label]
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.Color = colors[j]
		s.Shape = draw.CircleGlyph{}
		s.Radius = vg.Points(r.cfg.MarkerRadius)
		p.Add(s)
		p.Legend.Add(label, s)
	}

	ticks := plot.ConstantTicks{{Value: 1, Label: "1"}, {Value: 2, Label: "2"}, {Value: 3, Label: "3"}, {Value: 4, Label: "4"}}
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks
	p.X.Min, p.X.Max = 0.5, 4.5
	p.Y.Min, p.Y.Max = 0.5, 4.5
	return p, nil
}
