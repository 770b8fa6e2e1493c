package model

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/filters"
	"github.com/sjwhitworth/golearn/naive"
)

// golearn parses datasets from CSV, so the adapters below round-trip feature
// matrices through temporary files: once at fit time, once per prediction
// batch. Crude, but it keeps the binding on golearn's stable public surface,
// and the explainer already batches its perturbations into a single call.

// NaiveBayesModel binds a Bernoulli naive Bayes classifier to the Model
// contract. Features are binarized before fitting, so it suits the 0/1
// document-term matrices of the spam workflow.
type NaiveBayesModel struct {
	clf      *naive.BernoulliNBClassifier
	template *base.DenseInstances
	names    []string
	positive string
	fallback string // a known class token used to pad prediction batches
}

// TrainNaiveBayes fits the classifier on X with string class labels.
// positive is the label mapped to 1.0 by Predict.
func TrainNaiveBayes(X [][]float64, labels []string, featureNames []string, positive string) (*NaiveBayesModel, error) {
	template, cleanup, err := instancesFromMatrix(X, labels, featureNames)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	clf := naive.NewBernoulliNBClassifier()
	clf.Fit(binarize(template))
	return &NaiveBayesModel{
		clf:      clf,
		template: template,
		names:    featureNames,
		positive: positive,
		fallback: labels[0],
	}, nil
}

func (m *NaiveBayesModel) Predict(X [][]float64) ([]float64, error) {
	grid, cleanup, err := m.grid(X)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	pred, err := m.clf.Predict(binarize(grid))
	if err != nil {
		return nil, fmt.Errorf("model: naive bayes predict: %w", err)
	}
	return classSlice(pred, len(X), m.positive)
}

// PredictProba returns the hard labels as degenerate 0/1 probabilities;
// golearn's Bernoulli NB does not expose calibrated scores.
func (m *NaiveBayesModel) PredictProba(X [][]float64) ([]float64, error) {
	return m.Predict(X)
}

// Evaluate predicts labels for X and reports accuracy plus the confusion
// matrix summary against the true labels.
func (m *NaiveBayesModel) Evaluate(X [][]float64, labels []string) (float64, string, error) {
	grid, cleanup, err := instancesTemplated(X, labels, m.names, m.template)
	if err != nil {
		return 0, "", err
	}
	defer cleanup()
	pred, err := m.clf.Predict(binarize(grid))
	if err != nil {
		return 0, "", fmt.Errorf("model: naive bayes predict: %w", err)
	}
	cm, err := evaluation.GetConfusionMatrix(grid, pred)
	if err != nil {
		return 0, "", fmt.Errorf("model: confusion matrix: %w", err)
	}
	return evaluation.GetAccuracy(cm), evaluation.GetSummary(cm), nil
}

func (m *NaiveBayesModel) grid(X [][]float64) (*base.DenseInstances, func(), error) {
	dummy := make([]string, len(X))
	for i := range dummy {
		dummy[i] = m.fallback
	}
	return instancesTemplated(X, dummy, m.names, m.template)
}

// ForestModel binds a golearn random forest, used in the course as a
// cross-check on the census network.
type ForestModel struct {
	clf      *ensemble.RandomForest
	template *base.DenseInstances
	names    []string
	positive string
	fallback string
}

// TrainRandomForest fits cfg.TreeCount trees over cfg.TreeFeatures features.
func TrainRandomForest(X [][]float64, labels []string, featureNames []string, positive string, cfg Config) (*ForestModel, error) {
	template, cleanup, err := instancesFromMatrix(X, labels, featureNames)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	clf := ensemble.NewRandomForest(cfg.TreeCount, cfg.TreeFeatures)
	if err := clf.Fit(binarize(template)); err != nil {
		return nil, fmt.Errorf("model: random forest fit: %w", err)
	}
	return &ForestModel{
		clf:      clf,
		template: template,
		names:    featureNames,
		positive: positive,
		fallback: labels[0],
	}, nil
}

func (m *ForestModel) Predict(X [][]float64) ([]float64, error) {
	dummy := make([]string, len(X))
	for i := range dummy {
		dummy[i] = m.fallback
	}
	grid, cleanup, err := instancesTemplated(X, dummy, m.names, m.template)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	pred, err := m.clf.Predict(binarize(grid))
	if err != nil {
		return nil, fmt.Errorf("model: random forest predict: %w", err)
	}
	return classSlice(pred, len(X), m.positive)
}

// PredictProba returns hard labels; see NaiveBayesModel.PredictProba.
func (m *ForestModel) PredictProba(X [][]float64) ([]float64, error) {
	return m.Predict(X)
}

// Evaluate reports accuracy and the confusion matrix summary on X.
func (m *ForestModel) Evaluate(X [][]float64, labels []string) (float64, string, error) {
	grid, cleanup, err := instancesTemplated(X, labels, m.names, m.template)
	if err != nil {
		return 0, "", err
	}
	defer cleanup()
	pred, err := m.clf.Predict(binarize(grid))
	if err != nil {
		return 0, "", fmt.Errorf("model: random forest predict: %w", err)
	}
	cm, err := evaluation.GetConfusionMatrix(grid, pred)
	if err != nil {
		return 0, "", fmt.Errorf("model: confusion matrix: %w", err)
	}
	return evaluation.GetAccuracy(cm), evaluation.GetSummary(cm), nil
}

// binarize converts every non-class attribute to binary, the representation
// the Bernoulli classifier and the ID3 forest expect.
func binarize(src base.FixedDataGrid) base.FixedDataGrid {
	b := filters.NewBinaryConvertFilter()
	for _, a := range base.NonClassAttributes(src) {
		b.AddAttribute(a)
	}
	b.Train()
	return base.NewLazilyFilteredInstances(src, b)
}

func classSlice(pred base.FixedDataGrid, n int, positive string) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if base.GetClass(pred, i) == positive {
			out[i] = 1
		}
	}
	return out, nil
}

// instancesFromMatrix writes X and labels to a temporary CSV and parses it
// into golearn instances. The cleanup removes the temporary directory; the
// parsed instances stay valid after it runs.
func instancesFromMatrix(X [][]float64, labels []string, featureNames []string) (*base.DenseInstances, func(), error) {
	path, cleanup, err := writeMatrixCSV(X, labels, featureNames)
	if err != nil {
		return nil, nil, err
	}
	inst, err := base.ParseCSVToInstances(path, true)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("model: parsing instances: %w", err)
	}
	return inst, cleanup, nil
}

// instancesTemplated parses a matrix against the training template so the
// attribute layout matches the fitted classifier.
func instancesTemplated(X [][]float64, labels []string, featureNames []string, template *base.DenseInstances) (*base.DenseInstances, func(), error) {
	path, cleanup, err := writeMatrixCSV(X, labels, featureNames)
	if err != nil {
		return nil, nil, err
	}
	inst, err := base.ParseCSVToTemplatedInstances(path, true, template)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("model: parsing templated instances: %w", err)
	}
	return inst, cleanup, nil
}

func writeMatrixCSV(X [][]float64, labels []string, featureNames []string) (string, func(), error) {
	if len(X) == 0 {
		return "", nil, fmt.Errorf("model: empty feature matrix")
	}
	if len(X) != len(labels) {
		return "", nil, fmt.Errorf("model: %d rows but %d labels", len(X), len(labels))
	}
	if len(featureNames) != len(X[0]) {
		return "", nil, fmt.Errorf("model: %d feature names for %d columns", len(featureNames), len(X[0]))
	}

	dir, err := os.MkdirTemp("", "golearn-grid-")
	if err != nil {
		return "", nil, fmt.Errorf("model: temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, "grid.csv")
	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("model: creating grid csv: %w", err)
	}
	w := csv.NewWriter(f)
	header := append(append([]string{}, featureNames...), "class")
	if err := w.Write(header); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("model: writing grid header: %w", err)
	}
	row := make([]string, len(featureNames)+1)
	for i, xs := range X {
		for j, v := range xs {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		row[len(row)-1] = labels[i]
		if err := w.Write(row); err != nil {
			f.Close()
			cleanup()
			return "", nil, fmt.Errorf("model: writing grid row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
