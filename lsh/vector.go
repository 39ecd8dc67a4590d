package lsh

import "github.com/google/uuid"

// Vector is an identity-bearing point in the metric space. Identity is the
// Key: two vectors with equal keys are the same vector for deduplication,
// regardless of their values. Vectors are shared by reference between the
// tables of an index and are never copied.
type Vector struct {
	Key    string    // unique identity of the vector
	Values []float32 // vector data
}

// NewVector creates a vector with a fresh UUID as its key.
func NewVector(values []float32) *Vector {
	return &Vector{Key: uuid.NewString(), Values: values}
}

// NewVectorWithKey creates a vector with a caller-supplied key.
func NewVectorWithKey(key string, values []float32) *Vector {
	return &Vector{Key: key, Values: values}
}

// Dimension returns the number of components in the vector.
func (v *Vector) Dimension() int {
	return len(v.Values)
}
