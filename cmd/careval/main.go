package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"careval/pkg/config"
	"careval/pkg/pipeline"
	"careval/pkg/render"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --config : Optional YAML file overriding the defaults (dataset 19,
//            charts written to ./plots, 12x6 inch viridis figures).
// --export : Optional path; the encoded table is also written there as parquet.
//
// Example:
//   go run ./cmd/careval --config careval.yaml --export out/cars.parquet
//
// ---------------------------------------------------------------------
//

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	exportPath := flag.String("export", "", "write the encoded table to this parquet file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	p, err := pipeline.New(cfg, nil, os.Stdout, log.Default())
	if err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}
	p.ExportPath = *exportPath
	p.Renderer.OnArtifact = func(a render.Artifact) {
		log.Printf("📊 Saved %s", a.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	_, err = p.Run(ctx)
	stop()
	// A failed load is reported in the outcome and still exits zero.
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
}
