package lsh

import (
	"encoding/gob"
	"math"
	"math/rand"

	"github.com/patrikhermansson/golsh/core"
)

// EuclideanHashFamily produces p-stable projection hashes sensitive to
// Euclidean distance. Each hash function projects a vector onto a random
// Gaussian direction and buckets the result with width W; vectors within W
// of each other along the projection tend to share a bucket.
type EuclideanHashFamily struct {
	Dimensions int     // dimensionality of hashed vectors
	W          float64 // bucket width; larger W means coarser buckets
}

// NewEuclideanHashFamily creates a Euclidean family for vectors of the given
// dimensionality. w controls the bucket width and should be on the order of
// the neighbor distances of interest.
func NewEuclideanHashFamily(dimensions int, w float64) *EuclideanHashFamily {
	return &EuclideanHashFamily{Dimensions: dimensions, W: w}
}

// CreateHashFunction draws a fresh projection hash function using rnd.
func (f *EuclideanHashFamily) CreateHashFunction(rnd *rand.Rand) HashFunction {
	projection := make([]float32, f.Dimensions)
	for i := range projection {
		projection[i] = float32(rnd.NormFloat64())
	}
	return &EuclideanHashFunction{
		Projection: projection,
		Offset:     rnd.Float64() * f.W,
		W:          f.W,
	}
}

// CreateDistanceMeasure returns the Euclidean distance.
func (f *EuclideanHashFamily) CreateDistanceMeasure() core.DistanceFunc {
	return core.Euclidean
}

// Name returns the name of the family's metric.
func (f *EuclideanHashFamily) Name() string { return "euclidean" }

// Dimension returns the dimensionality of vectors the family hashes.
func (f *EuclideanHashFamily) Dimension() int { return f.Dimensions }

// EuclideanHashFunction is a single p-stable projection hash.
type EuclideanHashFunction struct {
	Projection []float32 // random Gaussian direction
	Offset     float64   // random shift in [0, W)
	W          float64   // bucket width
}

// Hash buckets the vector's projection onto the random direction.
func (h *EuclideanHashFunction) Hash(v *Vector) int {
	return int(math.Round((dot(h.Projection, v.Values) + h.Offset) / h.W))
}

// Register the concrete types so indexes using this family can be gob-encoded.
func init() {
	gob.Register(&EuclideanHashFamily{})
	gob.Register(&EuclideanHashFunction{})
}
