// Package render draws the exploratory charts of the car evaluation table
// as PNG files with gonum/plot.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"careval/pkg/data"
)

// Chart names one of the rendered figures.
type Chart string

const (
	ClassDistribution   Chart = "class_distribution"
	SafetyVsClass       Chart = "safety_vs_class"
	LuggageDistribution Chart = "luggage_distribution"
	BuyingVsMaint       Chart = "buying_vs_maint"
)

// Charts lists every figure in the order Render produces them.
var Charts = []Chart{ClassDistribution, SafetyVsClass, LuggageDistribution, BuyingVsMaint}

var titles = map[Chart]string{
	ClassDistribution:   "Car Acceptability Class Distribution",
	SafetyVsClass:       "Class Distribution by Safety Rating",
	LuggageDistribution: "Distribution of Luggage Boot Sizes",
	BuyingVsMaint:       "Buying vs Maintenance Cost by Class",
}

// FileName is the PNG file name of the chart.
func (c Chart) FileName() string { return string(c) + ".png" }

// Title is the bold heading drawn above the chart.
func (c Chart) Title() string { return titles[c] }

// Artifact is a chart written to disk.
type Artifact struct {
	Chart Chart
	Path  string
}

// Renderer writes the charts with one fixed style.
type Renderer struct {
	cfg Config

	// OnArtifact, when set, is called after each chart is saved. It is the
	// hook for interactive display.
	OnArtifact func(Artifact)
}

// New validates cfg and returns a Renderer using it.
func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg}, nil
}

// Config returns the style the Renderer was built with.
func (r *Renderer) Config() Config { return r.cfg }

// Render draws every chart of t into dir, creating dir when needed. The
// table must carry the buying and maint encodings for the scatter chart.
// On error, the artifacts already written are returned with it.
func (r *Renderer) Render(t *data.Table, dir string) ([]Artifact, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	steps := map[Chart]func(*data.Table) (*plot.Plot, error){
		ClassDistribution:   r.classDistribution,
		SafetyVsClass:       r.safetyVsClass,
		LuggageDistribution: r.luggageDistribution,
		BuyingVsMaint:       r.buyingVsMaint,
	}

	var written []Artifact
	for _, chart := range Charts {
		p, err := steps[chart](t)
		if err != nil {
			return written, fmt.Errorf("%s: %w", chart, err)
		}
		path := filepath.Join(dir, chart.FileName())
		if err := r.save(p, path); err != nil {
			return written, fmt.Errorf("%s: %w", chart, err)
		}
		a := Artifact{Chart: chart, Path: path}
		written = append(written, a)
		if r.OnArtifact != nil {
			r.OnArtifact(a)
		}
	}
	return written, nil
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	w := vg.Length(r.cfg.Width) * vg.Inch
	h := vg.Length(r.cfg.Height) * vg.Inch
	return p.Save(w, h, path)
}
