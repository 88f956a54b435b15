// Package config holds the run configuration shared by the driver programs.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training or evaluation run.
type Config struct {
	// Architecture lists the layer widths, input first.
	Architecture []int   `yaml:"architecture"`
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	Seed         int64   `yaml:"seed"`

	TrainDir string `yaml:"train_dir"`
	// TrainCSV, when set, replaces TrainDir with an MNIST-style CSV file.
	TrainCSV  string `yaml:"train_csv"`
	CSVHeader bool   `yaml:"csv_header"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// PerLabel > 0 samples that many images per label (evaluation).
	PerLabel int `yaml:"per_label"`
	// ValidationSplit holds out that fraction of the training set.
	ValidationSplit float64 `yaml:"validation_split"`
	// Patience > 0 enables early stopping on the epoch loss.
	Patience int `yaml:"patience"`

	ModelPath string `yaml:"model_path"`
	// CSVLog, when set, receives one row per epoch.
	CSVLog string `yaml:"csv_log"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	TrainDir     string
	TrainCSV     string
	ModelPath    string
	CSVLog       string
	LearningRate float64
	Epochs       int
	Seed         int64
	PerLabel     int
}

// Default returns the 28x28 digit configuration: {784, 128, 64, 10},
// learning rate 0.01, 10 epochs.
func Default() *Config {
	return &Config{
		Architecture: []int{784, 128, 64, 10},
		LearningRate: 0.01,
		Epochs:       10,
		TrainDir:     "train",
		Width:        28,
		Height:       28,
		ModelPath:    "trained_brain.gob",
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML from r over the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.TrainDir != "" {
		c.TrainDir = o.TrainDir
	}
	if o.TrainCSV != "" {
		c.TrainCSV = o.TrainCSV
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.CSVLog != "" {
		c.CSVLog = o.CSVLog
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.PerLabel > 0 {
		c.PerLabel = o.PerLabel
	}
}

// TagRun inserts "-<id>" before the extension of CSVLog, so every run keeps
// its own epoch log. An empty CSVLog or id is left alone.
func (c *Config) TagRun(id string) {
	if c.CSVLog == "" || id == "" {
		return
	}
	ext := filepath.Ext(c.CSVLog)
	c.CSVLog = strings.TrimSuffix(c.CSVLog, ext) + "-" + id + ext
}

// Classes is the width of the output layer.
func (c *Config) Classes() int {
	return c.Architecture[len(c.Architecture)-1]
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Architecture) < 2 {
		return fmt.Errorf("architecture needs at least 2 widths (got %v)", c.Architecture)
	}
	for i, w := range c.Architecture {
		if w <= 0 {
			return fmt.Errorf("architecture[%d] must be > 0 (got %d)", i, w)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be > 0 (got %dx%d)", c.Width, c.Height)
	}
	if c.TrainCSV == "" && c.Width*c.Height != c.Architecture[0] {
		return fmt.Errorf("image size %dx%d does not match input width %d", c.Width, c.Height, c.Architecture[0])
	}
	if !(c.LearningRate > 0) {
		return fmt.Errorf("learning_rate must be > 0 (got %v)", c.LearningRate)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.ValidationSplit < 0 || c.ValidationSplit >= 1 {
		return fmt.Errorf("validation_split must be in [0, 1) (got %v)", c.ValidationSplit)
	}
	if c.TrainDir == "" && c.TrainCSV == "" {
		return errors.New("train_dir or train_csv must be set")
	}
	if c.ModelPath == "" {
		return errors.New("model_path must be set")
	}
	return nil
}
