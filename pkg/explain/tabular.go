package explain

import (
	"fmt"
	"math/rand"

	"github.com/veale/gdpr-ml-course/pkg/model"
)

// Encoder turns categorical feature rows into the numeric matrix the model
// consumes. The tabular explainer perturbs in categorical space and
// re-encodes every perturbation through this function.
type Encoder func(rows [][]string) ([][]float64, error)

// Tabular explains the prediction for rows[idx]. columns names the features
// of each row; ref supplies the value distributions perturbations are drawn
// from (normally the training feature records).
//
// Perturbations keep each field of the instance with probability ½ and
// otherwise redraw it from a random reference row. The interpretable
// representation is binary: 1 where a perturbation agrees with the
// instance. Proximity is the fraction of agreeing fields, pushed through
// the exponential kernel.
func Tabular(columns []string, ref [][]string, rows [][]string, idx int, m model.Model, enc Encoder, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(rows) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(rows))
	}
	if len(ref) == 0 {
		return nil, fmt.Errorf("explain: empty reference dataset")
	}
	inst := rows[idx]
	d := len(columns)
	if len(inst) != d {
		return nil, fmt.Errorf("explain: instance has %d fields, %d columns named", len(inst), d)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	perturbed := make([][]string, cfg.NumSamples)
	Z := make([][]float64, cfg.NumSamples)

	perturbed[0] = inst
	Z[0] = ones(d)
	for s := 1; s < cfg.NumSamples; s++ {
		row := make([]string, d)
		z := make([]float64, d)
		src := ref[rng.Intn(len(ref))]
		for j := 0; j < d; j++ {
			if rng.Float64() < 0.5 {
				row[j] = inst[j]
			} else {
				row[j] = src[j]
			}
			if row[j] == inst[j] {
				z[j] = 1
			}
		}
		perturbed[s] = row
		Z[s] = z
	}

	X, err := enc(perturbed)
	if err != nil {
		return nil, fmt.Errorf("explain: encoding perturbations: %w", err)
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

	names := make([]string, d)
	for j, col := range columns {
		names[j] = col + "=" + inst[j]
	}
	return &Result{
		Index:         idx,
		Score:         preds[0],
		Contributions: topContributions(names, beta, cfg.NumFeatures),
	}, nil
}

// proximity maps each binary agreement vector to a kernel weight.
func proximity(Z [][]float64, width float64) []float64 {
	out := make([]float64, len(Z))
	for i, z := range Z {
		agree := 0.0
		for _, v := range z {
			agree += v
		}
		dist := 1 - agree/float64(len(z))
		out[i] = kernelWeight(dist, width)
	}
	return out
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
