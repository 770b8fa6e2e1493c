package explain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFitWeightedRidge_RecoversLinearRule: with a known linear target and
// near-zero regularization the surrogate coefficients must come back.
func TestFitWeightedRidge_RecoversLinearRule(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	n, d := 400, 3
	Z := make([][]float64, n)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		z := make([]float64, d)
		for j := range z {
			if rng.Float64() < 0.5 {
				z[j] = 1
			}
		}
		Z[i] = z
		y[i] = 2*z[0] - z[1] + 0.5
		w[i] = 1
	}

	beta, err := fitWeightedRidge(Z, y, w, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, beta[0], 1e-4)
	assert.InDelta(t, -1.0, beta[1], 1e-4)
	assert.InDelta(t, 0.0, beta[2], 1e-4)
}

// TestFitWeightedRidge_ShapeMismatch rejects inconsistent inputs.
func TestFitWeightedRidge_ShapeMismatch(t *testing.T) {
	_, err := fitWeightedRidge([][]float64{{1}}, []float64{1, 2}, []float64{1}, 0.1)
	assert.Error(t, err)
	_, err = fitWeightedRidge(nil, nil, nil, 0.1)
	assert.Error(t, err)
}

// TestKernelWeight decays monotonically with distance and is 1 at zero.
func TestKernelWeight(t *testing.T) {
	assert.InDelta(t, 1.0, kernelWeight(0, 0.75), 1e-12)
	assert.Greater(t, kernelWeight(0.2, 0.75), kernelWeight(0.8, 0.75))
	assert.Greater(t, kernelWeight(1, 0.75), 0.0)
}

// TestTopContributions orders by absolute weight and keeps signs.
func TestTopContributions(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	beta := []float64{0.1, -0.9, 0.5, -0.2}
	top := topContributions(names, beta, 2)
	require.Len(t, top, 2)
	assert.Equal(t, Contribution{Feature: "b", Weight: -0.9}, top[0])
	assert.Equal(t, Contribution{Feature: "c", Weight: 0.5}, top[1])
}
