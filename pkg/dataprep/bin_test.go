package dataprep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veale/gdpr-ml-course/pkg/dataprep"
)

// TestBinByMedian_Boundaries pins the bucket edges: zero is None, the
// median itself is still Low, anything above it is High.
func TestBinByMedian_Boundaries(t *testing.T) {
	bins, median, err := dataprep.BinByMedian([]float64{0, 4, 8, 9, 12})
	require.NoError(t, err)
	require.Equal(t, 8.0, median)

	assert.Equal(t, []string{
		dataprep.BinNone, // 0
		dataprep.BinLow,  // 4
		dataprep.BinLow,  // 8 == median
		dataprep.BinHigh, // 9 == median + 1
		dataprep.BinHigh, // 12
	}, bins)
}

// TestBinByMedian_IgnoresZeros checks zeros do not drag the median down.
func TestBinByMedian_IgnoresZeros(t *testing.T) {
	_, median, err := dataprep.BinByMedian([]float64{0, 0, 0, 5, 10, 15})
	require.NoError(t, err)
	assert.Equal(t, 10.0, median)
}

// TestBinByMedian_NoPositives: the median is undefined without positive
// values.
func TestBinByMedian_NoPositives(t *testing.T) {
	_, _, err := dataprep.BinByMedian([]float64{0, 0, 0})
	assert.ErrorIs(t, err, dataprep.ErrInsufficientData)

	_, err = dataprep.PositiveMedian(nil)
	assert.ErrorIs(t, err, dataprep.ErrInsufficientData)
}

// TestBinByMedian_Deterministic: same input, same boundaries, same bins.
func TestBinByMedian_Deterministic(t *testing.T) {
	input := []float64{0, 3, 14, 7, 0, 21}
	a, ma, err := dataprep.BinByMedian(input)
	require.NoError(t, err)
	b, mb, err := dataprep.BinByMedian(input)
	require.NoError(t, err)
	assert.Equal(t, ma, mb)
	assert.Equal(t, a, b)
}
