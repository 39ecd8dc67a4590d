package lsh

import (
	"math/rand"
	"testing"

	"github.com/patrikhermansson/golsh/core"
)

// firstValueFamily hashes a vector by the integer part of one coordinate,
// cycling through coordinates as functions are drawn, so different draws
// give different (but predictable) hash functions.
type firstValueFamily struct {
	dimensions int
	next       int
}

func (f *firstValueFamily) CreateHashFunction(rnd *rand.Rand) HashFunction {
	h := firstValueHash{component: f.next % f.dimensions}
	f.next++
	return h
}

func (f *firstValueFamily) CreateDistanceMeasure() core.DistanceFunc {
	return core.Euclidean
}

func (f *firstValueFamily) Name() string { return "first-value" }

func (f *firstValueFamily) Dimension() int { return f.dimensions }

type firstValueHash struct {
	component int
}

func (h firstValueHash) Hash(v *Vector) int {
	return int(v.Values[h.component])
}

func TestHashTableSignature(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	table := newHashTable(2, &firstValueFamily{dimensions: 2}, rnd)

	if got := table.numberOfHashes(); got != 2 {
		t.Errorf("numberOfHashes() = %d; want 2", got)
	}

	v := NewVectorWithKey("v", []float32{3.7, -1.2})
	// The two hash functions look at components 0 and 1.
	if got := table.signature(v); got != "3:-1" {
		t.Errorf("signature = %q; want %q", got, "3:-1")
	}
}

func TestHashTableAddQuery(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	table := newHashTable(1, &firstValueFamily{dimensions: 1}, rnd)

	a := NewVectorWithKey("a", []float32{2.1})
	b := NewVectorWithKey("b", []float32{2.9})
	c := NewVectorWithKey("c", []float32{7.0})
	table.add(a)
	table.add(b)
	table.add(c)

	hits := table.query(NewVectorWithKey("q", []float32{2.5}))
	if len(hits) != 2 {
		t.Fatalf("expected 2 colliding vectors, got %d", len(hits))
	}
	keys := map[string]bool{}
	for _, v := range hits {
		keys[v.Key] = true
	}
	if !keys["a"] || !keys["b"] {
		t.Errorf("expected a and b in bucket, got %v", keys)
	}

	if hits := table.query(NewVectorWithKey("q", []float32{4.0})); len(hits) != 0 {
		t.Errorf("expected empty bucket, got %d vectors", len(hits))
	}
}

func TestHashTablesAreIndependent(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	family := &firstValueFamily{dimensions: 2}
	t1 := newHashTable(1, family, rnd)
	t2 := newHashTable(1, family, rnd)

	// The family hands out different functions to each table, so a vector
	// stored in one table is not visible through the other.
	v := NewVectorWithKey("v", []float32{1.0, 9.0})
	t1.add(v)
	if len(t1.Buckets) != 1 {
		t.Errorf("expected 1 bucket in t1, got %d", len(t1.Buckets))
	}
	if len(t2.Buckets) != 0 {
		t.Errorf("expected t2 to stay empty, got %d buckets", len(t2.Buckets))
	}
	if t1.signature(v) == t2.signature(v) {
		t.Errorf("expected different signatures across tables, both got %q", t1.signature(v))
	}
}
