package dataprep

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Ordered bin labels for the capital gain/loss columns.
const (
	BinNone = "None"
	BinLow  = "Low"
	BinHigh = "High"
)

// PositiveMedian returns the empirical median of the strictly positive
// entries of vals. If no entry is positive the median is undefined and
// ErrInsufficientData is returned.
func PositiveMedian(vals []float64) (float64, error) {
	var pos []float64
	for _, v := range vals {
		if v > 0 {
			pos = append(pos, v)
		}
	}
	if len(pos) == 0 {
		return 0, ErrInsufficientData
	}
	sort.Float64s(pos)
	return stat.Quantile(0.5, stat.Empirical, pos, nil), nil
}

// BinByMedian maps each value onto the three ordered buckets: exactly zero
// is None, positive up to and including the median is Low, above it High.
// The median is computed once over the whole input, before any train/test
// split; see the Clean doc comment for the leakage caveat.
func BinByMedian(vals []float64) ([]string, float64, error) {
	median, err := PositiveMedian(vals)
	if err != nil {
		return nil, 0, err
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		switch {
		case v == 0:
			out[i] = BinNone
		case v <= median:
			out[i] = BinLow
		default:
			out[i] = BinHigh
		}
	}
	return out, median, nil
}

func parseColumn(col string, records []string) ([]float64, error) {
	out := make([]float64, len(records))
	for i, r := range records {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, fmt.Errorf("dataprep: column %s row %d: %w", col, i, err)
		}
		out[i] = v
	}
	return out, nil
}
