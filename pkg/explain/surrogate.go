package explain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// kernelWeight is the exponential proximity kernel: distance 0 weighs 1,
// weight decays with the square of the distance.
func kernelWeight(dist, width float64) float64 {
	return math.Exp(-(dist * dist) / (width * width))
}

// fitWeightedRidge solves the weighted ridge regression
//
//	min_β Σ_i w_i (y_i - β₀ - z_i·β)² + λ‖β‖²
//
// over the binary interpretable matrix Z (n×d) and returns β (length d,
// intercept discarded). The normal equations are solved directly; with the
// ridge term the system is well conditioned for the small d used here.
func fitWeightedRidge(Z [][]float64, y, w []float64, ridge float64) ([]float64, error) {
	n := len(Z)
	if n == 0 || len(y) != n || len(w) != n {
		return nil, fmt.Errorf("explain: surrogate fit: %d samples, %d targets, %d weights", n, len(y), len(w))
	}
	d := len(Z[0])

	// Augment with an intercept column.
	p := d + 1
	a := mat.NewDense(p, p, nil)
	b := mat.NewVecDense(p, nil)
	zi := make([]float64, p)
	for i := 0; i < n; i++ {
		copy(zi, Z[i])
		zi[d] = 1
		wi := w[i]
		for j := 0; j < p; j++ {
			b.SetVec(j, b.AtVec(j)+wi*zi[j]*y[i])
			for k := j; k < p; k++ {
				v := a.At(j, k) + wi*zi[j]*zi[k]
				a.Set(j, k, v)
				a.Set(k, j, v)
			}
		}
	}
	for j := 0; j < p; j++ {
		a.Set(j, j, a.At(j, j)+ridge)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("explain: surrogate fit: %w", err)
	}
	out := make([]float64, d)
	for j := 0; j < d; j++ {
		out[j] = beta.AtVec(j)
	}
	return out, nil
}
