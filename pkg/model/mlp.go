package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MLP is a one-hidden-layer sigmoid network for binary classification,
// trained with mini-batch SGD on binary cross-entropy with L2 weight decay.
// Small by intent: the course trains it on a few dozen one-hot census
// features, where anything larger just memorizes the training split.
type MLP struct {
	w1 *mat.Dense // in×hidden
	b1 []float64
	w2 []float64 // hidden
	b2 float64
	in int
}

// MLPTrainer fits an MLP using the config's hidden_units, learning_rate,
// decay, epochs, batch_size and seed.
type MLPTrainer struct{}

// Fit trains the network. Weight initialization and batch order are driven
// by cfg.Seed, so a fixed seed reproduces the same model.
func (MLPTrainer) Fit(X [][]float64, y []float64, cfg Config) (Model, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("model: mlp: %d rows but %d labels", len(X), len(y))
	}
	d := len(X[0])
	h := cfg.HiddenUnits
	if h <= 0 {
		return nil, fmt.Errorf("model: mlp: hidden_units must be positive, got %d", h)
	}
	batch := cfg.BatchSize
	if batch <= 0 || batch > len(X) {
		batch = len(X)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	m := &MLP{
		w1: mat.NewDense(d, h, nil),
		b1: make([]float64, h),
		w2: make([]float64, h),
		in: d,
	}
	for i := 0; i < d; i++ {
		for j := 0; j < h; j++ {
			m.w1.Set(i, j, rng.NormFloat64()*0.01)
		}
	}
	for j := 0; j < h; j++ {
		m.w2[j] = rng.NormFloat64() * 0.01
	}

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	for ep := 0; ep < cfg.Epochs; ep++ {
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for start := 0; start < len(idx); start += batch {
			end := start + batch
			if end > len(idx) {
				end = len(idx)
			}
			bx, by := gather(X, y, idx[start:end])
			m.step(bx, by, cfg.LearningRate, cfg.Decay)
		}
	}
	return m, nil
}

// PredictProba runs the forward pass and returns p(y=1) per row.
func (m *MLP) PredictProba(X [][]float64) ([]float64, error) {
	if len(X) == 0 {
		return nil, nil
	}
	if len(X[0]) != m.in {
		return nil, fmt.Errorf("model: mlp: %d features, network expects %d", len(X[0]), m.in)
	}
	_, p := m.forward(denseFromRows(X))
	return p, nil
}

// Predict thresholds PredictProba at 0.5.
func (m *MLP) Predict(X [][]float64) ([]float64, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

// forward returns hidden activations (n×h) and output probabilities (n).
func (m *MLP) forward(X *mat.Dense) (*mat.Dense, []float64) {
	n, _ := X.Dims()
	var hidden mat.Dense
	hidden.Mul(X, m.w1)
	hidden.Apply(func(_, j int, v float64) float64 {
		return sigmoid(v + m.b1[j])
	}, &hidden)

	var out mat.VecDense
	out.MulVec(&hidden, mat.NewVecDense(len(m.w2), m.w2))
	p := make([]float64, n)
	for i := range p {
		p[i] = sigmoid(out.AtVec(i) + m.b2)
	}
	return &hidden, p
}

// step runs one SGD update on a mini-batch: backprop of the cross-entropy
// gradient, then decayed weight updates in place.
func (m *MLP) step(X *mat.Dense, y []float64, lr, decay float64) {
	n, _ := X.Dims()
	h := len(m.w2)
	hidden, p := m.forward(X)

	delta := make([]float64, n)
	for i := range delta {
		delta[i] = (p[i] - y[i]) / float64(n)
	}
	deltaVec := mat.NewVecDense(n, delta)

	var gradW2 mat.VecDense
	gradW2.MulVec(hidden.T(), deltaVec)
	gradB2 := floats.Sum(delta)

	// dHidden = delta·w2 ⊙ σ'(hidden)
	var dHidden mat.Dense
	dHidden.Apply(func(i, j int, v float64) float64 {
		return delta[i] * m.w2[j] * v * (1 - v)
	}, hidden)

	var gradW1 mat.Dense
	gradW1.Mul(X.T(), &dHidden)
	gradB1 := make([]float64, h)
	for j := 0; j < h; j++ {
		gradB1[j] = mat.Sum(dHidden.ColView(j))
	}

	m.w1.Apply(func(i, j int, v float64) float64 {
		return v - lr*(gradW1.At(i, j)+decay*v)
	}, m.w1)
	for j := 0; j < h; j++ {
		m.w2[j] -= lr * (gradW2.AtVec(j) + decay*m.w2[j])
		m.b1[j] -= lr * gradB1[j]
	}
	m.b2 -= lr * gradB2
}

func sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }

// CrossEntropy is the mean binary cross-entropy of predictions p against
// labels y, useful for after-training reporting.
func CrossEntropy(y, p []float64) float64 {
	n := len(y)
	if n == 0 {
		return 0
	}
	s := 0.0
	for i := range y {
		q := math.Min(math.Max(p[i], 1e-12), 1-1e-12)
		s += -(y[i]*math.Log(q) + (1-y[i])*math.Log(1-q))
	}
	return s / float64(n)
}

func gather(X [][]float64, y []float64, idx []int) (*mat.Dense, []float64) {
	d := len(X[0])
	bx := mat.NewDense(len(idx), d, nil)
	by := make([]float64, len(idx))
	for i, k := range idx {
		bx.SetRow(i, X[k])
		by[i] = y[k]
	}
	return bx, by
}

func denseFromRows(X [][]float64) *mat.Dense {
	d := len(X[0])
	out := mat.NewDense(len(X), d, nil)
	for i, row := range X {
		out.SetRow(i, row)
	}
	return out
}
