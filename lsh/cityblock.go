package lsh

import (
	"encoding/gob"
	"math"
	"math/rand"

	"github.com/patrikhermansson/golsh/core"
)

// CityBlockHashFamily produces shifted grid hashes sensitive to Manhattan
// (city block) distance. Each hash function overlays a randomly shifted grid
// of cell width W on the space and hashes the cell coordinates of a vector.
type CityBlockHashFamily struct {
	Dimensions int     // dimensionality of hashed vectors
	W          float64 // grid cell width
}

// NewCityBlockHashFamily creates a city block family for vectors of the
// given dimensionality. w controls the grid cell width.
func NewCityBlockHashFamily(dimensions int, w float64) *CityBlockHashFamily {
	return &CityBlockHashFamily{Dimensions: dimensions, W: w}
}

// CreateHashFunction draws a fresh shifted grid hash function using rnd.
func (f *CityBlockHashFamily) CreateHashFunction(rnd *rand.Rand) HashFunction {
	offsets := make([]float64, f.Dimensions)
	for i := range offsets {
		offsets[i] = rnd.Float64() * f.W
	}
	return &CityBlockHashFunction{Offsets: offsets, W: f.W}
}

// CreateDistanceMeasure returns the Manhattan distance.
func (f *CityBlockHashFamily) CreateDistanceMeasure() core.DistanceFunc {
	return core.Manhattan
}

// Name returns the name of the family's metric.
func (f *CityBlockHashFamily) Name() string { return "cityblock" }

// Dimension returns the dimensionality of vectors the family hashes.
func (f *CityBlockHashFamily) Dimension() int { return f.Dimensions }

// CityBlockHashFunction is a single shifted grid hash.
type CityBlockHashFunction struct {
	Offsets []float64 // random grid shift per dimension, in [0, W)
	W       float64   // grid cell width
}

// Hash folds the per-dimension grid cell coordinates into one bucket value.
func (h *CityBlockHashFunction) Hash(v *Vector) int {
	combined := 1
	for i, offset := range h.Offsets {
		cell := int(math.Floor((float64(v.Values[i]) + offset) / h.W))
		combined = 31*combined + cell
	}
	return combined
}

// Register the concrete types so indexes using this family can be gob-encoded.
func init() {
	gob.Register(&CityBlockHashFamily{})
	gob.Register(&CityBlockHashFunction{})
}
