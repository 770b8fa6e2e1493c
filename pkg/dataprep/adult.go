// Package dataprep turns the raw adult census extract into the
// analysis-ready categorical frame used throughout the course: identifier
// columns dropped, high-cardinality categoricals collapsed through fixed
// recoding tables, capital gain/loss binned into three ordered levels, and
// rows carrying the "?" missing sentinel removed.
package dataprep

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// AdultColumns is the fixed raw schema of the census extract, in file order.
var AdultColumns = []string{
	"age", "workclass", "fnlwgt", "education", "education_num",
	"marital_status", "occupation", "relationship", "race", "sex",
	"capital_gain", "capital_loss", "hours_per_week", "country", "income",
}

// dropColumns are identifying/non-predictive and removed unconditionally.
var dropColumns = []string{"fnlwgt", "education_num"}

// missingSentinel marks an unknown field in the source file.
const missingSentinel = "?"

// categoricalTables are applied in Clean, one per recoded column.
var categoricalTables = []RecodeTable{
	EmployerTable, EducationTable, MaritalTable,
	OccupationTable, CountryTable, RaceTable,
}

// binColumns get median-of-positives binning into None/Low/High.
var binColumns = []string{"capital_gain", "capital_loss"}

// Clean runs the full recoding pipeline and returns the cleaned frame.
//
// The binning medians are computed over the complete input, before any
// train/test split. That mirrors the course handout, and it is a latent
// leakage pattern: test rows influence the bin thresholds the model is
// trained against. Recompute PositiveMedian on the training partition
// instead if that matters for your use.
func Clean(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	p := NewPipeline(
		checkSchema,
		dropIdentifiers,
		dropMissingRows,
		recodeCategoricals,
		binCapital,
		relabelIncome,
	)
	return p.Run(df)
}

func checkSchema(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := df.Names()
	if len(names) != len(AdultColumns) {
		return df, fmt.Errorf("%w: got %d columns, want %d",
			ErrSchemaMismatch, len(names), len(AdultColumns))
	}
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, want := range AdultColumns {
		if !have[want] {
			return df, fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, want)
		}
	}
	return df, nil
}

func dropIdentifiers(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out := df.Drop(dropColumns)
	if out.Err != nil {
		return df, fmt.Errorf("dataprep: dropping identifier columns: %w", out.Err)
	}
	return out, nil
}

// dropMissingRows removes every row with a "?" in any column, leading space
// tolerated. No imputation; absence of a row is not an error.
func dropMissingRows(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	records := df.Records()[1:] // skip header
	keep := make([]int, 0, len(records))
	for i, row := range records {
		missing := false
		for _, field := range row {
			if strings.TrimSpace(field) == missingSentinel {
				missing = true
				break
			}
		}
		if !missing {
			keep = append(keep, i)
		}
	}
	out := df.Subset(keep)
	if out.Err != nil {
		return df, fmt.Errorf("dataprep: filtering missing rows: %w", out.Err)
	}
	return out, nil
}

func recodeCategoricals(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, t := range categoricalTables {
		recoded, unmapped := t.Apply(df.Col(t.Column).Records())
		if len(unmapped) > 0 {
			return df, fmt.Errorf("dataprep: column %s: unmapped values %v",
				t.Column, unmapped)
		}
		df = df.Mutate(series.New(recoded, series.String, t.Column))
		if df.Err != nil {
			return df, fmt.Errorf("dataprep: recoding %s: %w", t.Column, df.Err)
		}
	}
	return df, nil
}

func binCapital(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, col := range binColumns {
		vals, err := parseColumn(col, df.Col(col).Records())
		if err != nil {
			return df, err
		}
		bins, _, err := BinByMedian(vals)
		if err != nil {
			return df, fmt.Errorf("column %s: %w", col, err)
		}
		df = df.Mutate(series.New(bins, series.String, col))
		if df.Err != nil {
			return df, fmt.Errorf("dataprep: binning %s: %w", col, df.Err)
		}
	}
	return df, nil
}

func relabelIncome(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	relabeled, _ := IncomeTable.Apply(df.Col("income").Records())
	df = df.Mutate(series.New(relabeled, series.String, "income"))
	if df.Err != nil {
		return df, fmt.Errorf("dataprep: relabeling income: %w", df.Err)
	}
	return df, nil
}
