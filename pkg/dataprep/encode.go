package dataprep

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// PositiveLabel is the cleaned income level encoded as 1.0.
const PositiveLabel = "Above"

// OneHotEncoder expands categorical columns into 0/1 indicator features.
// Category vocabularies are fixed at Fit time; values unseen during Fit
// encode as all-zero for that column.
type OneHotEncoder struct {
	Columns      []string
	FeatureNames []string
	index        []map[string]int // per column: category -> feature index
	width        int
}

// FitOneHot learns the category vocabulary of every non-label column of the
// cleaned frame, in sorted order so the encoding is deterministic.
func FitOneHot(df dataframe.DataFrame, label string) *OneHotEncoder {
	enc := &OneHotEncoder{}
	for _, col := range df.Names() {
		if col == label {
			continue
		}
		seen := map[string]bool{}
		for _, v := range df.Col(col).Records() {
			seen[v] = true
		}
		cats := make([]string, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Strings(cats)

		idx := make(map[string]int, len(cats))
		for _, c := range cats {
			idx[c] = len(enc.FeatureNames)
			enc.FeatureNames = append(enc.FeatureNames, col+"="+c)
		}
		enc.Columns = append(enc.Columns, col)
		enc.index = append(enc.index, idx)
		enc.width = len(enc.FeatureNames)
	}
	return enc
}

// Transform encodes rows whose fields are ordered like enc.Columns.
func (enc *OneHotEncoder) Transform(rows [][]string) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(enc.Columns) {
			return nil, fmt.Errorf("dataprep: row %d has %d fields, encoder expects %d",
				i, len(row), len(enc.Columns))
		}
		vec := make([]float64, enc.width)
		for j, v := range row {
			if k, ok := enc.index[j][v]; ok {
				vec[k] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

// TransformFrame encodes the feature columns of a cleaned frame and maps the
// label column to 1.0 for PositiveLabel, 0.0 otherwise.
func (enc *OneHotEncoder) TransformFrame(df dataframe.DataFrame, label string) ([][]float64, []float64, error) {
	rows := FeatureRecords(df, label)
	X, err := enc.Transform(rows)
	if err != nil {
		return nil, nil, err
	}
	labels := df.Col(label).Records()
	y := make([]float64, len(labels))
	for i, l := range labels {
		if l == PositiveLabel {
			y[i] = 1
		}
	}
	return X, y, nil
}

// FeatureRecords extracts the non-label fields of every row, ordered by the
// frame's column order with the label column removed.
func FeatureRecords(df dataframe.DataFrame, label string) [][]string {
	names := df.Names()
	cols := make([][]string, 0, len(names))
	n := df.Nrow()
	for _, name := range names {
		if name == label {
			continue
		}
		cols = append(cols, df.Col(name).Records())
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}
	return rows
}
