// Package model holds the capability-typed training contracts and the two
// classifier bindings used in the course: a small feed-forward network and
// adapters over golearn classifiers. The workflow layer only ever sees the
// Trainer and Model interfaces, so any conforming implementation can be
// substituted.
package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Model is a fitted binary classifier over numeric feature rows.
type Model interface {
	// Predict returns hard 0/1 labels for each row of X.
	Predict(X [][]float64) ([]float64, error)
	// PredictProba returns p(y=1) for each row of X. Implementations
	// without calibrated probabilities may return hard labels.
	PredictProba(X [][]float64) ([]float64, error)
}

// Trainer fits a Model. The configuration is opaque to callers: each
// trainer reads the hyperparameters it understands and ignores the rest.
type Trainer interface {
	Fit(X [][]float64, y []float64, cfg Config) (Model, error)
}

// Config carries the named hyperparameters of the course, loaded from YAML.
type Config struct {
	HiddenUnits  int     `yaml:"hidden_units"`
	LearningRate float64 `yaml:"learning_rate"`
	Decay        float64 `yaml:"decay"` // L2 weight decay
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	Seed         int64   `yaml:"seed"`

	// Resampling mirrors the course handout's trainer control block. Only
	// "none" is acted on today; the fields travel with the config so other
	// trainers can honor them.
	Resampling string `yaml:"resampling"`
	Repeats    int    `yaml:"repeats"`

	// Random forest settings for the golearn cross-check.
	TreeCount    int `yaml:"tree_count"`
	TreeFeatures int `yaml:"tree_features"`
}

// DefaultConfig returns the hyperparameters used in the course handout.
func DefaultConfig() Config {
	return Config{
		HiddenUnits:  5,
		LearningRate: 0.1,
		Decay:        1e-4,
		Epochs:       30,
		BatchSize:    32,
		Seed:         1,
		Resampling:   "none",
		Repeats:      1,
		TreeCount:    10,
		TreeFeatures: 3,
	}
}

// LoadConfig reads a YAML hyperparameter file, filling unset fields with
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("model: reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("model: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
