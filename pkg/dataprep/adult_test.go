package dataprep_test

import (
	"errors"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veale/gdpr-ml-course/pkg/dataprep"
)

// adultFrame builds a raw frame with the full census schema. Each row is
// given in file column order.
func adultFrame(t *testing.T, rows ...[]string) dataframe.DataFrame {
	t.Helper()
	records := [][]string{dataprep.AdultColumns}
	records = append(records, rows...)
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	require.NoError(t, df.Err)
	return df
}

func row(overrides map[string]string) []string {
	base := map[string]string{
		"age": "39", "workclass": "Private", "fnlwgt": "77516",
		"education": "Bachelors", "education_num": "13",
		"marital_status": "Married-civ-spouse", "occupation": "Sales",
		"relationship": "Husband", "race": "White", "sex": "Male",
		"capital_gain": "0", "capital_loss": "0", "hours_per_week": "40",
		"country": "United-States", "income": "<=50K",
	}
	for k, v := range overrides {
		base[k] = v
	}
	out := make([]string, len(dataprep.AdultColumns))
	for i, c := range dataprep.AdultColumns {
		out[i] = base[c]
	}
	return out
}

// TestClean_RecodesScenarioRow checks the handout's worked example: a
// never-married German high-school dropout in private-sector sales.
func TestClean_RecodesScenarioRow(t *testing.T) {
	df := adultFrame(t,
		row(map[string]string{
			"marital_status": "Never-married", "country": "Germany",
			"education": "10th", "workclass": "Private",
			"occupation": "Sales", "capital_gain": "500",
		}),
		row(map[string]string{"capital_gain": "1000"}),
		row(map[string]string{"capital_gain": "2000", "capital_loss": "100"}),
	)

	cleaned, err := dataprep.Clean(df)
	require.NoError(t, err)
	require.Equal(t, 3, cleaned.Nrow())

	assert.Equal(t, "Never-Married", cleaned.Col("marital_status").Elem(0).String())
	assert.Equal(t, "Euro_1", cleaned.Col("country").Elem(0).String())
	assert.Equal(t, "Dropout", cleaned.Col("education").Elem(0).String())
	assert.Equal(t, "Private", cleaned.Col("workclass").Elem(0).String(),
		"unmapped workclass value must pass through unchanged")
	assert.Equal(t, "Sales", cleaned.Col("occupation").Elem(0).String(),
		"unmapped occupation value must pass through unchanged")
	assert.Equal(t, "Below", cleaned.Col("income").Elem(0).String())
}

// TestClean_RetainedColumns verifies the two identifier columns are gone
// and everything else survives.
func TestClean_RetainedColumns(t *testing.T) {
	df := adultFrame(t,
		row(map[string]string{"capital_gain": "100"}),
		row(map[string]string{"capital_loss": "50"}),
	)
	cleaned, err := dataprep.Clean(df)
	require.NoError(t, err)

	want := []string{
		"age", "workclass", "education", "marital_status", "occupation",
		"relationship", "race", "sex", "capital_gain", "capital_loss",
		"hours_per_week", "country", "income",
	}
	assert.ElementsMatch(t, want, cleaned.Names())
}

// TestClean_DropsMissingRows checks that any "?" field, with or without a
// leading space, removes the whole row.
func TestClean_DropsMissingRows(t *testing.T) {
	df := adultFrame(t,
		row(map[string]string{"capital_gain": "100"}),
		row(map[string]string{"country": "?", "capital_gain": "200"}),
		row(map[string]string{"occupation": " ?", "capital_gain": "300"}),
		row(map[string]string{"capital_gain": "400"}),
	)
	cleaned, err := dataprep.Clean(df)
	require.NoError(t, err)

	assert.Equal(t, 2, cleaned.Nrow())
	for _, c := range cleaned.Col("country").Records() {
		assert.NotEqual(t, "?", c)
	}
}

// TestClean_SchemaMismatch rejects frames that do not carry the census
// layout.
func TestClean_SchemaMismatch(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"age", "income"},
		{"39", "<=50K"},
	})
	require.NoError(t, df.Err)

	_, err := dataprep.Clean(df)
	assert.ErrorIs(t, err, dataprep.ErrSchemaMismatch)
}

// TestClean_InsufficientData rejects input where a binning column has no
// strictly positive values.
func TestClean_InsufficientData(t *testing.T) {
	df := adultFrame(t,
		row(nil),
		row(nil),
	)
	_, err := dataprep.Clean(df)
	assert.ErrorIs(t, err, dataprep.ErrInsufficientData)
}

// TestClean_Deterministic runs the pipeline twice on the same input and
// expects identical output.
func TestClean_Deterministic(t *testing.T) {
	df := adultFrame(t,
		row(map[string]string{"capital_gain": "100", "capital_loss": "5"}),
		row(map[string]string{"capital_gain": "300"}),
		row(map[string]string{"capital_gain": "700", "country": "Poland"}),
	)
	a, err := dataprep.Clean(df)
	require.NoError(t, err)
	b, err := dataprep.Clean(df)
	require.NoError(t, err)
	assert.Equal(t, a.Records(), b.Records())
}

// TestRecodeTable_Reject surfaces unmapped values when the policy demands.
func TestRecodeTable_Reject(t *testing.T) {
	table := dataprep.NewRecodeTable("c", dataprep.Reject, map[string]string{"a": "A"})
	out, unmapped := table.Apply([]string{"a", "b", "b"})
	assert.Equal(t, []string{"A", "b", "b"}, out)
	assert.Equal(t, []string{"b", "b"}, unmapped)
}

// TestRecodeTable_Lookup reports mapping membership.
func TestRecodeTable_Lookup(t *testing.T) {
	got, ok := dataprep.CountryTable.Lookup("Germany")
	assert.True(t, ok)
	assert.Equal(t, "Euro_1", got)

	got, ok = dataprep.CountryTable.Lookup("United-States")
	assert.False(t, ok, "United-States has no entry and passes through")
	assert.Equal(t, "United-States", got)
}

var errSentinel = errors.New("stage failed")

// TestPipeline_StopsOnError verifies later stages never run after a
// failure.
func TestPipeline_StopsOnError(t *testing.T) {
	ran := false
	p := dataprep.NewPipeline(
		func(df dataframe.DataFrame) (dataframe.DataFrame, error) { return df, errSentinel },
		func(df dataframe.DataFrame) (dataframe.DataFrame, error) { ran = true; return df, nil },
	)
	_, err := p.Run(dataframe.DataFrame{})
	assert.ErrorIs(t, err, errSentinel)
	assert.False(t, ran)
}
