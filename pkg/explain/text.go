package explain

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/veale/gdpr-ml-course/pkg/model"
)

// Vectorizer turns raw texts into the feature matrix the model consumes.
// The text explainer perturbs the instance by deleting tokens and
// re-featurizes every perturbation through this function, so the model
// never needs to know the perturbation scheme.
type Vectorizer func(texts []string) ([][]float64, error)

// Text explains the model's prediction for one tokenized message. The
// interpretable units are the instance's distinct tokens: each perturbation
// drops a random subset of them (every occurrence), and a token's weight
// says how much its presence pushes the prediction.
func Text(tokens []string, m model.Model, vec Vectorizer, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	// Distinct tokens in first-appearance order.
	var vocab []string
	pos := map[string]int{}
	for _, t := range tokens {
		if _, ok := pos[t]; !ok {
			pos[t] = len(vocab)
			vocab = append(vocab, t)
		}
	}
	d := len(vocab)

	rng := rand.New(rand.NewSource(cfg.Seed))
	texts := make([]string, cfg.NumSamples)
	Z := make([][]float64, cfg.NumSamples)

	texts[0] = strings.Join(tokens, " ")
	Z[0] = ones(d)
	for s := 1; s < cfg.NumSamples; s++ {
		z := make([]float64, d)
		for j := range z {
			if rng.Float64() < 0.5 {
				z[j] = 1
			}
		}
		kept := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if z[pos[t]] == 1 {
				kept = append(kept, t)
			}
		}
		texts[s] = strings.Join(kept, " ")
		Z[s] = z
	}

	X, err := vec(texts)
	if err != nil {
		return nil, fmt.Errorf("explain: vectorizing perturbations: %w", err)
	}
	preds, err := m.PredictProba(X)
	if err != nil {
		return nil, fmt.Errorf("explain: scoring perturbations: %w", err)
	}

	weights := proximity(Z, cfg.KernelWidth)
	beta, err := fitWeightedRidge(Z, preds, weights, cfg.Ridge)
	if err != nil {
		return nil, err
	}
	return &Result{
		Score:         preds[0],
		Contributions: topContributions(vocab, beta, cfg.NumFeatures),
	}, nil
}
