// Package loader partitions cleaned datasets into train and test sets.
package loader

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// ErrEmptyPartition means the requested fraction left one side of the split
// with no rows.
var ErrEmptyPartition = errors.New("loader: split produced an empty partition")

// StratifiedIndices partitions row indices 0..n-1 into train and test,
// preserving the per-label proportions. labels must have one entry per row.
// The same seed and fraction always produce the same partition; the two
// index sets are disjoint, sorted, and together cover every row.
func StratifiedIndices(labels []string, testFraction float64, seed int64) (train, test []int, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("loader: test fraction %v out of (0,1)", testFraction)
	}

	groups := map[string][]int{}
	var order []string
	for i, l := range labels {
		if _, ok := groups[l]; !ok {
			order = append(order, l)
		}
		groups[l] = append(groups[l], i)
	}
	sort.Strings(order) // map iteration order must not leak into the split

	rng := rand.New(rand.NewSource(seed))
	for _, l := range order {
		idx := groups[l]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(float64(len(idx)) * testFraction)
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	if len(train) == 0 || len(test) == 0 {
		return nil, nil, fmt.Errorf("%w: %d train, %d test rows", ErrEmptyPartition, len(train), len(test))
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

// StratifiedSplit splits a cleaned frame on labelCol.
func StratifiedSplit(df dataframe.DataFrame, labelCol string, testFraction float64, seed int64) (train, test dataframe.DataFrame, err error) {
	trainIdx, testIdx, err := StratifiedIndices(df.Col(labelCol).Records(), testFraction, seed)
	if err != nil {
		return df, df, err
	}
	train = df.Subset(trainIdx)
	if train.Err != nil {
		return df, df, fmt.Errorf("loader: train subset: %w", train.Err)
	}
	test = df.Subset(testIdx)
	if test.Err != nil {
		return df, df, fmt.Errorf("loader: test subset: %w", test.Err)
	}
	return train, test, nil
}

// SplitSlices partitions parallel label/text slices with the same strategy.
func SplitSlices(labels, texts []string, testFraction float64, seed int64) (trainLabels, trainTexts, testLabels, testTexts []string, err error) {
	if len(labels) != len(texts) {
		return nil, nil, nil, nil, fmt.Errorf("loader: %d labels but %d texts", len(labels), len(texts))
	}
	trainIdx, testIdx, err := StratifiedIndices(labels, testFraction, seed)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	for _, i := range trainIdx {
		trainLabels = append(trainLabels, labels[i])
		trainTexts = append(trainTexts, texts[i])
	}
	for _, i := range testIdx {
		testLabels = append(testLabels, labels[i])
		testTexts = append(testTexts, texts[i])
	}
	return trainLabels, trainTexts, testLabels, testTexts, nil
}
