// Package lsh implements an in-memory approximate nearest neighbor index
// based on Locality-Sensitive Hashing. The index composes several independent
// hash tables; a query gathers the candidates colliding with the query vector
// in any table, deduplicates them, and ranks them by true distance.
package lsh

import (
	"math/rand"

	"github.com/patrikhermansson/golsh/core"
)

// HashFunction maps a vector to a single hash bucket. Locality sensitivity
// means that vectors close under the family's metric produce equal hashes
// with higher probability than distant ones.
type HashFunction interface {
	Hash(v *Vector) int
}

// HashFamily produces hash functions over vectors together with the distance
// measure they are sensitive to. A family encodes one similarity metric; all
// tables of an index draw their functions from the same family.
type HashFamily interface {
	// CreateHashFunction draws a fresh, independent hash function using rnd.
	CreateHashFunction(rnd *rand.Rand) HashFunction

	// CreateDistanceMeasure returns the distance used to rank candidates.
	CreateDistanceMeasure() core.DistanceFunc

	// Name returns the name of the family's metric.
	Name() string

	// Dimension returns the dimensionality of vectors the family hashes.
	Dimension() int
}

// dot computes the dot product of a projection and a vector.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
