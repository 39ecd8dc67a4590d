package lsh

import (
	"encoding/gob"
	"math/rand"

	"github.com/patrikhermansson/golsh/core"
)

// CosineHashFamily produces random hyperplane hashes sensitive to cosine
// distance. Each hash function records on which side of a random hyperplane
// a vector falls, so the hash depends only on direction, not magnitude.
type CosineHashFamily struct {
	Dimensions int // dimensionality of hashed vectors
}

// NewCosineHashFamily creates a cosine family for vectors of the given
// dimensionality.
func NewCosineHashFamily(dimensions int) *CosineHashFamily {
	return &CosineHashFamily{Dimensions: dimensions}
}

// CreateHashFunction draws a fresh hyperplane hash function using rnd.
func (f *CosineHashFamily) CreateHashFunction(rnd *rand.Rand) HashFunction {
	normal := make([]float32, f.Dimensions)
	for i := range normal {
		normal[i] = float32(rnd.NormFloat64())
	}
	return &CosineHashFunction{Normal: normal}
}

// CreateDistanceMeasure returns the cosine distance.
func (f *CosineHashFamily) CreateDistanceMeasure() core.DistanceFunc {
	return core.CosineDistance
}

// Name returns the name of the family's metric.
func (f *CosineHashFamily) Name() string { return "cosine" }

// Dimension returns the dimensionality of vectors the family hashes.
func (f *CosineHashFamily) Dimension() int { return f.Dimensions }

// CosineHashFunction is a single random hyperplane hash.
type CosineHashFunction struct {
	Normal []float32 // normal of the random hyperplane
}

// Hash returns 1 if the vector lies on the positive side of the hyperplane
// and 0 otherwise.
func (h *CosineHashFunction) Hash(v *Vector) int {
	if dot(h.Normal, v.Values) > 0 {
		return 1
	}
	return 0
}

// Register the concrete types so indexes using this family can be gob-encoded.
func init() {
	gob.Register(&CosineHashFamily{})
	gob.Register(&CosineHashFunction{})
}
