package lsh

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/patrikhermansson/golsh/core"
)

// ErrInvalidConfiguration is returned when an index is constructed with
// fewer than one hash table or fewer than one hash per table.
var ErrInvalidConfiguration = errors.New("lsh: invalid index configuration")

// ErrInvalidQueryParameter is returned when a query is issued with a
// negative result size. The index stays usable after this error.
var ErrInvalidQueryParameter = errors.New("lsh: invalid query parameter")

// Index is an in-memory LSH index. It holds a number of hash tables, each
// with a couple of hashes drawn from the same family. An inserted vector is
// fanned out to every table; a query unions the per-table candidates,
// deduplicates them by key, and ranks them by true distance to the query.
//
// More hashes per table means fewer candidates are selected for evaluation;
// more tables means higher recall at the cost of memory and hashing time.
type Index struct {
	mu      sync.RWMutex // protects tables and count
	family  HashFamily
	tables  []*hashTable
	count   int   // number of inserted vectors
	touched int64 // candidates evaluated across all queries, updated atomically
}

// New creates an index with numberOfHashTables independent tables, each
// holding numberOfHashes hash functions drawn fresh from the family. Both
// counts must be at least 1.
func New(family HashFamily, numberOfHashes, numberOfHashTables int) (*Index, error) {
	if numberOfHashes < 1 {
		return nil, fmt.Errorf("%w: number of hashes must be at least 1, got %d",
			ErrInvalidConfiguration, numberOfHashes)
	}
	if numberOfHashTables < 1 {
		return nil, fmt.Errorf("%w: number of hash tables must be at least 1, got %d",
			ErrInvalidConfiguration, numberOfHashTables)
	}
	log.Info().Msgf("Creating new LSH index with hashes=%d, tables=%d, distance=%s",
		numberOfHashes, numberOfHashTables, family.Name())
	rnd := rand.New(rand.NewSource(core.GetSeed()))
	tables := make([]*hashTable, numberOfHashTables)
	for i := range tables {
		tables[i] = newHashTable(numberOfHashes, family, rnd)
	}
	return &Index{
		family: family,
		tables: tables,
	}, nil
}

// Add stores the vector in every hash table of the index. The same vector
// may land in different buckets per table; that is what makes it findable.
func (idx *Index) Add(v *Vector) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, table := range idx.tables {
		table.add(v)
	}
	idx.count++
}

// BulkAdd stores multiple vectors in the index, showing progress.
func (idx *Index) BulkAdd(vectors []*Vector) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Create a progress bar with a newline on completion.
	bar := progressbar.NewOptions(len(vectors),
		progressbar.OptionOnCompletion(func() { fmt.Print("\n") }),
	)
	for _, v := range vectors {
		for _, table := range idx.tables {
			table.add(v)
		}
		idx.count++
		if err := bar.Add(1); err != nil {
			return err
		}
	}
	return nil
}

// rankedCandidate pairs a candidate vector with its distance to the query.
type rankedCandidate struct {
	vector   *Vector
	distance float64
}

// Query returns up to maxSize previously added vectors, nearest to the query
// first under the family's distance measure. The result may be empty when no
// table holds a vector colliding with the query; that is a normal outcome,
// not an error. maxSize must be non-negative.
func (idx *Index) Query(query *Vector, maxSize int) ([]*Vector, error) {
	if maxSize < 0 {
		return nil, fmt.Errorf("%w: maxSize must be non-negative, got %d",
			ErrInvalidQueryParameter, maxSize)
	}

	// Gather the candidates colliding with the query in any table and
	// deduplicate them by key.
	idx.mu.RLock()
	candidateSet := make(map[string]*Vector)
	for _, table := range idx.tables {
		for _, v := range table.query(query) {
			candidateSet[v.Key] = v
		}
	}
	idx.mu.RUnlock()

	// Every deduplicated candidate counts as one evaluation, including the
	// ones truncated away below.
	atomic.AddInt64(&idx.touched, int64(len(candidateSet)))

	// Rank candidates by true distance to the query. Ties are broken by key
	// so results do not depend on map iteration order.
	measure := idx.family.CreateDistanceMeasure()
	candidates := make([]rankedCandidate, 0, len(candidateSet))
	for _, v := range candidateSet {
		candidates = append(candidates, rankedCandidate{
			vector:   v,
			distance: measure(query.Values, v.Values),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance == candidates[j].distance {
			return candidates[i].vector.Key < candidates[j].vector.Key
		}
		return candidates[i].distance < candidates[j].distance
	})

	if len(candidates) > maxSize {
		candidates = candidates[:maxSize]
	}
	result := make([]*Vector, len(candidates))
	for i, c := range candidates {
		result[i] = c.vector
	}
	return result, nil
}

// NumberOfHashTables returns the number of hash tables in the index. The
// table count is fixed at construction.
func (idx *Index) NumberOfHashTables() int {
	return len(idx.tables)
}

// NumberOfHashes returns the number of hashes used in each hash table. It is
// read from the first table; all tables are built with the same count.
func (idx *Index) NumberOfHashes() int {
	return idx.tables[0].numberOfHashes()
}

// Touched returns the cumulative number of deduplicated near neighbour
// candidates evaluated by queries on this index. Divide by the number of
// queries issued to get the average evaluations per query.
func (idx *Index) Touched() int64 {
	return atomic.LoadInt64(&idx.touched)
}

// Stats returns some basic statistics about the index.
func (idx *Index) Stats() core.IndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return core.IndexStats{
		Count:     idx.count,
		Dimension: idx.family.Dimension(),
		Tables:    len(idx.tables),
		Hashes:    idx.tables[0].numberOfHashes(),
		Distance:  idx.family.Name(),
	}
}

// indexSerialized is used to serialize the index using gob.
type indexSerialized struct {
	Family  HashFamily
	Tables  []*hashTable
	Count   int
	Touched int64
}

// GobEncode serializes the index to bytes using gob.
func (idx *Index) GobEncode() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ser := indexSerialized{
		Family:  idx.family,
		Tables:  idx.tables,
		Count:   idx.count,
		Touched: atomic.LoadInt64(&idx.touched),
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(ser); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode deserializes the index from gob data.
func (idx *Index) GobDecode(data []byte) error {
	var ser indexSerialized
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&ser); err != nil {
		return err
	}
	idx.family = ser.Family
	idx.tables = ser.Tables
	idx.count = ser.Count
	atomic.StoreInt64(&idx.touched, ser.Touched)
	return nil
}

// Save writes the index to the given writer using gob encoding.
func (idx *Index) Save(w io.Writer) error {
	enc := gob.NewEncoder(w)
	return enc.Encode(idx)
}

// Load reads the index from the given reader using gob encoding.
func (idx *Index) Load(rdr io.Reader) error {
	dec := gob.NewDecoder(rdr)
	return dec.Decode(idx)
}

// Register Index for gob encoding.
func init() {
	gob.Register(&Index{})
}
