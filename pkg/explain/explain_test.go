package explain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veale/gdpr-ml-course/pkg/explain"
)

// columnModel scores rows by a fixed linear rule over the encoded features,
// standing in for an opaque trained classifier.
type columnModel struct {
	weights []float64
	bias    float64
}

func (m columnModel) PredictProba(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i, row := range X {
		s := m.bias
		for j, w := range m.weights {
			s += w * row[j]
		}
		out[i] = s
	}
	return out, nil
}

func (m columnModel) Predict(X [][]float64) ([]float64, error) {
	p, _ := m.PredictProba(X)
	for i := range p {
		if p[i] >= 0.5 {
			p[i] = 1
		} else {
			p[i] = 0
		}
	}
	return p, nil
}

// presenceEncoder encodes each row as indicators for (column, instance
// value) pairs of the explained instance, so tests control exactly which
// field drives the model.
func presenceEncoder(inst []string) explain.Encoder {
	return func(rows [][]string) ([][]float64, error) {
		out := make([][]float64, len(rows))
		for i, row := range rows {
			vec := make([]float64, len(inst))
			for j := range inst {
				if row[j] == inst[j] {
					vec[j] = 1
				}
			}
			out[i] = vec
		}
		return out, nil
	}
}

func tabularFixture() (columns []string, ref, rows [][]string) {
	columns = []string{"education", "marital_status", "occupation"}
	ref = [][]string{
		{"Dropout", "Married", "Sales"},
		{"Bachelors", "Never-Married", "Admin"},
		{"Masters", "Not-Married", "Service"},
		{"HS-Graduate", "Widowed", "Blue-Collar"},
	}
	rows = [][]string{
		{"Bachelors", "Married", "Sales"},
		{"Dropout", "Never-Married", "Admin"},
	}
	return columns, ref, rows
}

// TestTabular_TopFeature: when only one field moves the model, that field
// must carry the dominant positive weight.
func TestTabular_TopFeature(t *testing.T) {
	columns, ref, rows := tabularFixture()
	// Only agreement on column 0 ("Bachelors") matters.
	m := columnModel{weights: []float64{1, 0, 0}}

	cfg := explain.DefaultConfig()
	cfg.NumFeatures = 3
	cfg.NumSamples = 500
	cfg.Seed = 5

	res, err := explain.Tabular(columns, ref, rows, 0, m, presenceEncoder(rows[0]), cfg)
	require.NoError(t, err)

	require.Len(t, res.Contributions, 3, "must return exactly the requested count")
	top := res.Contributions[0]
	assert.Equal(t, "education=Bachelors", top.Feature)
	assert.Greater(t, top.Weight, 0.0)
	for _, c := range res.Contributions[1:] {
		assert.Less(t, abs(c.Weight), abs(top.Weight))
	}
	assert.InDelta(t, 1.0, res.Score, 1e-9, "score is the model output on the instance itself")
}

// TestTabular_Deterministic: the same seed reproduces the explanation.
func TestTabular_Deterministic(t *testing.T) {
	columns, ref, rows := tabularFixture()
	m := columnModel{weights: []float64{0.5, -1, 0.25}}

	cfg := explain.DefaultConfig()
	cfg.NumSamples = 300
	cfg.Seed = 9

	a, err := explain.Tabular(columns, ref, rows, 1, m, presenceEncoder(rows[1]), cfg)
	require.NoError(t, err)
	b, err := explain.Tabular(columns, ref, rows, 1, m, presenceEncoder(rows[1]), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Contributions, b.Contributions)
}

// TestTabular_IndexOutOfRange surfaces bad instance indices.
func TestTabular_IndexOutOfRange(t *testing.T) {
	columns, ref, rows := tabularFixture()
	m := columnModel{weights: []float64{1, 0, 0}}
	cfg := explain.DefaultConfig()

	for _, idx := range []int{-1, len(rows)} {
		_, err := explain.Tabular(columns, ref, rows, idx, m, presenceEncoder(rows[0]), cfg)
		assert.ErrorIs(t, err, explain.ErrIndexOutOfRange, "index %d", idx)
	}
}

// TestTabular_BadConfig rejects unusable settings before any sampling.
func TestTabular_BadConfig(t *testing.T) {
	columns, ref, rows := tabularFixture()
	m := columnModel{}

	bad := []explain.Config{
		{NumFeatures: 0, NumSamples: 100, KernelWidth: 1},
		{NumFeatures: 3, NumSamples: 1, KernelWidth: 1},
		{NumFeatures: 3, NumSamples: 100, KernelWidth: 0},
		{NumFeatures: 3, NumSamples: 100, KernelWidth: 1, Ridge: -1},
	}
	for i, cfg := range bad {
		_, err := explain.Tabular(columns, ref, rows, 0, m, presenceEncoder(rows[0]), cfg)
		assert.Error(t, err, "config %d", i)
	}
}

// TestText_TopToken: a model keyed on one token must surface that token
// with positive weight.
func TestText_TopToken(t *testing.T) {
	tokens := []string{"free", "prize", "waiting", "call", "now"}

	// Vectorize as per-token presence; the model fires on "free" only.
	vec := func(texts []string) ([][]float64, error) {
		out := make([][]float64, len(texts))
		for i, text := range texts {
			v := make([]float64, 1)
			if containsToken(text, "free") {
				v[0] = 1
			}
			out[i] = v
		}
		return out, nil
	}
	m := columnModel{weights: []float64{1}}

	cfg := explain.DefaultConfig()
	cfg.NumFeatures = 3
	cfg.NumSamples = 400
	cfg.Seed = 3

	res, err := explain.Text(tokens, m, vec, cfg)
	require.NoError(t, err)
	require.Len(t, res.Contributions, 3)
	assert.Equal(t, "free", res.Contributions[0].Feature)
	assert.Greater(t, res.Contributions[0].Weight, 0.0)
}

// TestText_NoTokens rejects empty instances.
func TestText_NoTokens(t *testing.T) {
	m := columnModel{weights: []float64{1}}
	vec := func(texts []string) ([][]float64, error) {
		out := make([][]float64, len(texts))
		for i := range out {
			out[i] = []float64{0}
		}
		return out, nil
	}
	_, err := explain.Text(nil, m, vec, explain.DefaultConfig())
	assert.ErrorIs(t, err, explain.ErrNoTokens)
}

// TestText_ClampsFeatureCount: asking for more contributions than tokens
// returns one per token.
func TestText_ClampsFeatureCount(t *testing.T) {
	tokens := []string{"free", "call"}
	vec := func(texts []string) ([][]float64, error) {
		out := make([][]float64, len(texts))
		for i, text := range texts {
			v := make([]float64, 1)
			if containsToken(text, "call") {
				v[0] = 1
			}
			out[i] = v
		}
		return out, nil
	}
	cfg := explain.DefaultConfig()
	cfg.NumFeatures = 10
	cfg.NumSamples = 200

	res, err := explain.Text(tokens, columnModel{weights: []float64{1}}, vec, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Contributions, 2)
}

func containsToken(text, tok string) bool {
	for _, f := range strings.Fields(text) {
		if f == tok {
			return true
		}
	}
	return false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
