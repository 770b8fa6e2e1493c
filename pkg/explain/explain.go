// Package explain fits local interpretable surrogates around single
// predictions: the neighbourhood of an instance is sampled by perturbation,
// scored by the model under inspection, and summarized by a weighted linear
// model whose coefficients become per-feature contribution weights.
//
// The package never looks inside a model; it only calls PredictProba on
// batches of perturbed inputs, so anything satisfying model.Model can be
// explained.
package explain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrIndexOutOfRange means the requested instance index is outside the
	// supplied dataset.
	ErrIndexOutOfRange = errors.New("explain: instance index out of range")

	// ErrNoTokens means a text instance produced no tokens to perturb.
	ErrNoTokens = errors.New("explain: instance has no tokens")
)

// Config controls one explanation call.
type Config struct {
	// NumFeatures is how many contributions to surface, largest absolute
	// weight first. Clamped to the number of interpretable features.
	NumFeatures int
	// NumSamples is the perturbation neighbourhood size, instance included.
	NumSamples int
	// KernelWidth scales the exponential proximity kernel.
	KernelWidth float64
	// Ridge is the L2 regularizer of the surrogate fit.
	Ridge float64
	// Seed drives perturbation sampling; a fixed seed reproduces the
	// explanation exactly.
	Seed int64
}

// DefaultConfig matches the course handout settings.
func DefaultConfig() Config {
	return Config{
		NumFeatures: 5,
		NumSamples:  1000,
		KernelWidth: 0.75,
		Ridge:       1e-3,
		Seed:        1,
	}
}

func (c Config) validate() error {
	if c.NumFeatures <= 0 {
		return fmt.Errorf("explain: num features must be positive, got %d", c.NumFeatures)
	}
	if c.NumSamples < 2 {
		return fmt.Errorf("explain: need at least 2 samples, got %d", c.NumSamples)
	}
	if c.KernelWidth <= 0 {
		return fmt.Errorf("explain: kernel width must be positive, got %v", c.KernelWidth)
	}
	if c.Ridge < 0 {
		return fmt.Errorf("explain: ridge must be non-negative, got %v", c.Ridge)
	}
	return nil
}

// Contribution is one feature's signed weight in the local surrogate.
type Contribution struct {
	Feature string
	Weight  float64
}

// Result is the explanation of one prediction: the model's score on the
// instance and the top contributions, ordered by absolute weight.
type Result struct {
	Index         int
	Score         float64
	Contributions []Contribution
}

// topContributions ranks features by absolute surrogate weight and keeps k.
func topContributions(names []string, beta []float64, k int) []Contribution {
	idx := make([]int, len(names))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		wa, wb := beta[idx[a]], beta[idx[b]]
		if wa < 0 {
			wa = -wa
		}
		if wb < 0 {
			wb = -wb
		}
		return wa > wb
	})
	if k > len(idx) {
		k = len(idx)
	}
	out := make([]Contribution, k)
	for i := 0; i < k; i++ {
		out[i] = Contribution{Feature: names[idx[i]], Weight: beta[idx[i]]}
	}
	return out
}
