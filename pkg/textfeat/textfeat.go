// Package textfeat builds document-term matrices: messages are tokenized
// and hashed into a fixed number of buckets, so the feature space is known
// before any document is seen and perturbed texts featurize consistently.
package textfeat

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Tokenize lowercases s and splits it on every non-letter, non-digit rune.
// Single-character tokens are dropped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

// Hasher maps token sets onto a fixed-width binary feature vector by
// hashing each token into one of Buckets slots (presence, not counts).
// Distinct tokens may collide; with the course's bucket counts that is the
// accepted trade for a closed feature space.
type Hasher struct {
	Buckets int
}

// NewHasher returns a Hasher with the given bucket count.
func NewHasher(buckets int) (*Hasher, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("textfeat: bucket count must be positive, got %d", buckets)
	}
	return &Hasher{Buckets: buckets}, nil
}

// Bucket returns the feature index of one token.
func (h *Hasher) Bucket(token string) int {
	f := fnv.New32a()
	f.Write([]byte(token))
	return int(f.Sum32() % uint32(h.Buckets))
}

// Vector featurizes one document.
func (h *Hasher) Vector(text string) []float64 {
	vec := make([]float64, h.Buckets)
	for _, tok := range Tokenize(text) {
		vec[h.Bucket(tok)] = 1
	}
	return vec
}

// Matrix featurizes a document collection into a dense document-term matrix.
func (h *Hasher) Matrix(texts []string) [][]float64 {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = h.Vector(t)
	}
	return out
}

// FeatureNames labels each hash bucket for reporting.
func (h *Hasher) FeatureNames() []string {
	names := make([]string, h.Buckets)
	for i := range names {
		names[i] = fmt.Sprintf("term_%03d", i)
	}
	return names
}
