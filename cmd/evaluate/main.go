// Command evaluate scores a saved network on randomly chosen images from
// <dir>/<label>/ and prints the diagnostics for every example.
//
// Execute com: go run ./cmd/evaluate -model trained_brain.gob -dir train
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/FlavioCFOliveira/digitbrain/internal/config"
	"github.com/FlavioCFOliveira/digitbrain/internal/dataset"
	"github.com/FlavioCFOliveira/digitbrain/internal/metrics"
	"github.com/FlavioCFOliveira/digitbrain/internal/net"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults are used when empty)")
	dir := flag.String("dir", "", "Override image directory")
	modelPath := flag.String("model", "", "Override model path")
	perLabel := flag.Int("per-label", 0, "Images sampled per label (default 10)")
	seed := flag.Int64("seed", 0, "PRNG seed for sampling")

	flag.Parse()

	cfg := config.Default()
	cfg.PerLabel = 10
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(config.Overrides{
		TrainDir:  *dir,
		ModelPath: *modelPath,
		PerLabel:  *perLabel,
		Seed:      *seed,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	brain, err := net.Load(cfg.ModelPath)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}
	fmt.Printf("Trained network loaded from %s\n", cfg.ModelPath)

	examples, err := dataset.LoadDir(cfg.TrainDir, dataset.Options{
		Classes:  brain.OutputSize(),
		Width:    cfg.Width,
		Height:   cfg.Height,
		PerLabel: cfg.PerLabel,
		Seed:     cfg.Seed,
		Logger:   brain.Logger(),
	})
	if err != nil {
		log.Fatalf("load test data: %v", err)
	}
	fmt.Printf("Loaded %d test examples.\n", len(examples))

	report := metrics.NewReport(brain.OutputSize())
	for i, ex := range examples {
		p, err := metrics.Predict(brain, ex.Input)
		if err != nil {
			log.Fatalf("example %d: %v", i, err)
		}
		expected := metrics.Argmax(ex.Target)
		report.Record(expected, p.Label)

		fmt.Printf("Test Example %d\n", i)
		fmt.Printf("Expected label: %d\n", expected)
		p.Print(os.Stdout)
		fmt.Println("--------------------------------------------------")
	}

	printConfusion(report)
	fmt.Printf("Test Accuracy: %.2f%%\n", report.Accuracy()*100)
}

func printConfusion(r *metrics.Report) {
	fmt.Println("Confusion (rows expected, columns predicted):")
	fmt.Printf("%4s", "")
	for j := range r.Confusion {
		fmt.Printf("%5d", j)
	}
	fmt.Println()
	for i, row := range r.Confusion {
		fmt.Printf("%4d", i)
		for _, c := range row {
			fmt.Printf("%5d", c)
		}
		fmt.Println()
	}
}
