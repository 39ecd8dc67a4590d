package lsh

import (
	"math/rand"
	"strconv"
	"strings"
)

// hashTable maps a concatenated hash signature to the set of vectors stored
// under it. Each table owns its own hash functions; the tables of an index
// share nothing but the family they were drawn from.
type hashTable struct {
	Functions []HashFunction
	Buckets   map[string][]*Vector
}

// newHashTable builds a table with numberOfHashes functions drawn from the
// family using rnd.
func newHashTable(numberOfHashes int, family HashFamily, rnd *rand.Rand) *hashTable {
	functions := make([]HashFunction, numberOfHashes)
	for i := range functions {
		functions[i] = family.CreateHashFunction(rnd)
	}
	return &hashTable{
		Functions: functions,
		Buckets:   make(map[string][]*Vector),
	}
}

// signature concatenates the outputs of all hash functions into one bucket key.
func (t *hashTable) signature(v *Vector) string {
	var sb strings.Builder
	for i, f := range t.Functions {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(strconv.Itoa(f.Hash(v)))
	}
	return sb.String()
}

// add stores the vector in the bucket matching its signature.
func (t *hashTable) add(v *Vector) {
	sig := t.signature(v)
	t.Buckets[sig] = append(t.Buckets[sig], v)
}

// query returns the vectors sharing the query's signature in this table.
func (t *hashTable) query(v *Vector) []*Vector {
	return t.Buckets[t.signature(v)]
}

// numberOfHashes returns the number of concatenated hash functions.
func (t *hashTable) numberOfHashes() int {
	return len(t.Functions)
}
