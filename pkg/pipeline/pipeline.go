// Package pipeline chains the loader, the summarizer and the renderer into
// one run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"careval/pkg/analysis"
	"careval/pkg/config"
	"careval/pkg/data"
	"careval/pkg/loader"
	"careval/pkg/render"
)

// Outcome describes what a run produced.
type Outcome struct {
	RunID string

	// Skipped is set when the load failed or produced no rows; Reason
	// holds the cause and nothing else was computed.
	Skipped bool
	Reason  error

	Report    *analysis.Report
	Exported  string
	Artifacts []render.Artifact
}

// Pipeline runs load, summarize, optional export and render in sequence.
type Pipeline struct {
	Loader   *loader.Loader
	Renderer *render.Renderer

	OutputDir string

	// ExportPath, when set, receives the encoded table as parquet.
	ExportPath string

	Out    io.Writer
	Logger *log.Logger
}

// New wires a Pipeline from cfg. A nil src uses the UCI repository client.
func New(cfg config.Config, src data.Source, out io.Writer, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	if out == nil {
		out = io.Discard
	}
	if src == nil {
		src = data.NewUCIClient(cfg.UCI())
	}
	r, err := render.New(cfg.Render)
	if err != nil {
		return nil, err
	}
	l := loader.New(src, out, logger)
	l.DatasetID = cfg.DatasetID

	return &Pipeline{
		Loader:    l,
		Renderer:  r,
		OutputDir: cfg.OutputDir,
		Out:       out,
		Logger:    logger,
	}, nil
}

// Run performs one run. A failed or empty load is logged and reported as a
// skipped Outcome with a nil error; summarize, export and render errors are
// returned.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	o := &Outcome{RunID: uuid.NewString()}
	p.Logger.Printf("▶️ run %s started", o.RunID)

	res := p.Loader.Load(ctx)
	if !res.OK() {
		return p.skip(o, res.Err), nil
	}
	defer res.Table.Release()
	if res.Table.NumRows() == 0 {
		return p.skip(o, data.ErrNoData), nil
	}

	report, enriched, err := analysis.Summarize(res.Table)
	if err != nil {
		return o, fmt.Errorf("summarize: %w", err)
	}
	if enriched != res.Table {
		defer enriched.Release()
	}
	o.Report = report
	if _, err := report.WriteTo(p.Out); err != nil {
		return o, fmt.Errorf("write report: %w", err)
	}

	if p.ExportPath != "" {
		if err := data.ExportParquet(enriched, p.ExportPath); err != nil {
			return o, fmt.Errorf("export: %w", err)
		}
		o.Exported = p.ExportPath
		p.Logger.Printf("💾 run %s exported %s", o.RunID, p.ExportPath)
	}

	fmt.Fprintln(p.Out, "\n🖼️ Generating visualizations...")
	o.Artifacts, err = p.Renderer.Render(enriched, p.OutputDir)
	if err != nil {
		return o, fmt.Errorf("render: %w", err)
	}

	fmt.Fprintf(p.Out, "\n🎉 Analysis complete! Check the '%s' folder for visualizations.\n", p.OutputDir)
	p.Logger.Printf("✅ run %s finished with %d charts", o.RunID, len(o.Artifacts))
	return o, nil
}

func (p *Pipeline) skip(o *Outcome, reason error) *Outcome {
	if errors.Is(reason, data.ErrNoData) {
		p.Logger.Printf("⚠️ run %s: dataset is empty, nothing to analyze", o.RunID)
	} else {
		p.Logger.Printf("⚠️ run %s: skipping analysis: %v", o.RunID, reason)
	}
	o.Skipped = true
	o.Reason = reason
	return o
}
