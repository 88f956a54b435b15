// Command train fits a digit classifier to <train_dir>/<label>/ images (or an
// MNIST-style CSV file) and saves the trained network.
//
// Execute com: go run ./cmd/train -config configs/digits.yaml
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
	"github.com/google/uuid"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults are used when empty)")
	trainDir := flag.String("train-dir", "", "Override training image directory")
	trainCSV := flag.String("train-csv", "", "Train from an MNIST-style CSV file instead")
	modelPath := flag.String("model", "", "Override output model path")
	csvLog := flag.String("csv-log", "", "Override per-epoch CSV log path")
	learningRate := flag.Float64("lr", 0, "Learning rate")
	epochs := flag.Int("epochs", 0, "Number of epochs")
	seed := flag.Int64("seed", 0, "PRNG seed (0 means time based)")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		TrainDir:     *trainDir,
		TrainCSV:     *trainCSV,
		ModelPath:    *modelPath,
		CSVLog:       *csvLog,
		LearningRate: *learningRate,
		Epochs:       *epochs,
		Seed:         *seed,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	runID := uuid.NewString()
	logger := log.New(os.Stderr, fmt.Sprintf("run=%s ", runID[:8]), log.LstdFlags)
	logger.Printf("run_id=%s architecture=%v lr=%v epochs=%d", runID, cfg.Architecture, cfg.LearningRate, cfg.Epochs)
	cfg.TagRun(runID[:8])
	if cfg.CSVLog != "" {
		logger.Printf("csv_log=%s", cfg.CSVLog)
	}

	examples, err := loadExamples(cfg, logger)
	if err != nil {
		log.Fatalf("load training data: %v", err)
	}

	var held []net.Example
	if cfg.ValidationSplit > 0 {
		examples, held = dataset.Split(examples, 1-cfg.ValidationSplit, cfg.Seed)
	}
	fmt.Printf("Loaded %d training examples.\n", len(examples))
	if len(held) > 0 {
		fmt.Printf("Held out %d validation examples.\n", len(held))
	}

	opts := []net.Option{net.WithLogger(logger), net.WithCallbacks(callbacks(cfg)...)}
	if cfg.Seed != 0 {
		opts = append(opts, net.WithSeed(cfg.Seed))
	}
	brain, err := net.New(cfg.Architecture, opts...)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}
	brain.Summary(os.Stdout)

	fmt.Println("Starting training...")
	if err := brain.Train(examples, cfg.LearningRate, cfg.Epochs); err != nil {
		log.Fatalf("training failed: %v", err)
	}
	fmt.Println("Training finished.")

	if err := brain.Save(cfg.ModelPath); err != nil {
		log.Fatalf("save model: %v", err)
	}
	fmt.Printf("Trained network saved to %s\n", cfg.ModelPath)

	report, err := metrics.Evaluate(brain, examples)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	fmt.Printf("Training Accuracy: %.2f%%\n", report.Accuracy()*100)

	if len(held) > 0 {
		report, err := metrics.Evaluate(brain, held)
		if err != nil {
			log.Fatalf("evaluate: %v", err)
		}
		fmt.Printf("Validation Accuracy: %.2f%%\n", report.Accuracy()*100)
	}
}

func loadExamples(cfg *config.Config, logger *log.Logger) ([]net.Example, error) {
	if cfg.TrainCSV != "" {
		return dataset.LoadCSV(cfg.TrainCSV, cfg.Classes(), cfg.CSVHeader)
	}
	return dataset.LoadDir(cfg.TrainDir, dataset.Options{
		Classes: cfg.Classes(),
		Width:   cfg.Width,
		Height:  cfg.Height,
		Seed:    cfg.Seed,
		Logger:  logger,
	})
}

func callbacks(cfg *config.Config) []net.Callback {
	var cbs []net.Callback
	if cfg.CSVLog != "" {
		cbs = append(cbs, net.NewCSVLogger(cfg.CSVLog, false))
	}
	if cfg.Patience > 0 {
		cbs = append(cbs, net.NewEarlyStopping(cfg.Patience, 0))
	}
	return cbs
}
