package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/veale/gdpr-ml-course/pkg/dataprep"
)

// ReadAdult parses the comma-separated census extract. The file carries no
// header, fields may have leading spaces, and every column is kept as a
// string: recoding and binning downstream work on the raw tokens.
func ReadAdult(r io.Reader) (dataframe.DataFrame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(dataprep.AdultColumns)

	records := [][]string{dataprep.AdultColumns}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("dataset: reading census csv: %w", err)
		}
		row := make([]string, len(rec))
		for i, f := range rec {
			row[i] = strings.TrimSpace(f)
		}
		records = append(records, row)
	}
	if len(records) == 1 {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: census file is empty")
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return df, fmt.Errorf("dataset: loading census frame: %w", df.Err)
	}
	return df, nil
}
