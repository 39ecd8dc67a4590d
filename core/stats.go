package core

// IndexStats contains metadata about an index.
type IndexStats struct {
	Count     int    // total number of indexed vectors
	Dimension int    // dimensionality of vectors
	Tables    int    // number of hash tables composing the index
	Hashes    int    // number of hash functions per table
	Distance  string // name of the distance metric
}
