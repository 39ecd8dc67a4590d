package cmd

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/patrikhermansson/golsh/core"
	"github.com/patrikhermansson/golsh/lsh"
)

var (
	benchDimensions int
	benchVectors    int
	benchQueries    int
	benchK          int
	benchHashes     int
	benchTables     int
	benchFamily     string
	benchWidth      float64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure recall and candidate cost on a random dataset",
	Long: `Builds an index over a seeded random dataset, runs kNN queries against
it, and reports Recall@k versus an exact linear scan together with the mean
number of candidates evaluated per query. Use GOLSH_SEED to make runs
reproducible.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchDimensions, "dimensions", 20, "vector dimensionality")
	benchCmd.Flags().IntVar(&benchVectors, "vectors", 10000, "number of vectors to index")
	benchCmd.Flags().IntVar(&benchQueries, "queries", 100, "number of queries to run")
	benchCmd.Flags().IntVar(&benchK, "k", 10, "number of neighbors per query")
	benchCmd.Flags().IntVar(&benchHashes, "hashes", 4, "number of hashes per table")
	benchCmd.Flags().IntVar(&benchTables, "tables", 8, "number of hash tables")
	benchCmd.Flags().StringVar(&benchFamily, "family", "euclidean",
		"hash family: euclidean, cosine, or cityblock")
	benchCmd.Flags().Float64Var(&benchWidth, "width", 1.0,
		"bucket width for the euclidean and cityblock families")
	rootCmd.AddCommand(benchCmd)
}

// newFamily builds the hash family selected on the command line.
func newFamily() (lsh.HashFamily, error) {
	switch benchFamily {
	case "euclidean":
		return lsh.NewEuclideanHashFamily(benchDimensions, benchWidth), nil
	case "cosine":
		return lsh.NewCosineHashFamily(benchDimensions), nil
	case "cityblock":
		return lsh.NewCityBlockHashFamily(benchDimensions, benchWidth), nil
	}
	return nil, fmt.Errorf("unknown hash family: %s", benchFamily)
}

func runBench(cmd *cobra.Command, args []string) error {
	family, err := newFamily()
	if err != nil {
		return err
	}
	index, err := lsh.New(family, benchHashes, benchTables)
	if err != nil {
		return err
	}

	rnd := rand.New(rand.NewSource(core.GetSeed()))
	dataset := make([]*lsh.Vector, benchVectors)
	for i := range dataset {
		values := make([]float32, benchDimensions)
		for d := range values {
			values[d] = rnd.Float32()
		}
		dataset[i] = lsh.NewVectorWithKey(fmt.Sprintf("v%d", i), values)
	}

	start := time.Now()
	if err := index.BulkAdd(dataset); err != nil {
		return err
	}
	stats := index.Stats()
	fmt.Printf("Indexed %d vectors (%d dimensions) in %.2fs; distance: %s\n",
		stats.Count, stats.Dimension, time.Since(start).Seconds(), stats.Distance)

	measure := family.CreateDistanceMeasure()
	var totalRecall float64
	touchedBefore := index.Touched()
	start = time.Now()
	for i := 0; i < benchQueries; i++ {
		values := make([]float32, benchDimensions)
		for d := range values {
			values[d] = rnd.Float32()
		}
		query := lsh.NewVectorWithKey(fmt.Sprintf("q%d", i), values)

		results, err := index.Query(query, benchK)
		if err != nil {
			return err
		}
		totalRecall += recallAtK(results, exactNeighbors(dataset, query, benchK, measure))
	}
	elapsed := time.Since(start).Seconds()
	touched := index.Touched() - touchedBefore

	fmt.Printf("Ran %d queries (k=%d) in %.2fs\n", benchQueries, benchK, elapsed)
	fmt.Printf(" -> Mean Recall@%d:           %.2f\n", benchK,
		totalRecall/float64(benchQueries))
	fmt.Printf(" -> Mean candidates touched:  %.1f\n",
		float64(touched)/float64(benchQueries))
	return nil
}

// exactNeighbors returns the keys of the k true nearest neighbors of the
// query found by a linear scan over the dataset.
func exactNeighbors(dataset []*lsh.Vector, query *lsh.Vector, k int,
	measure core.DistanceFunc) []string {

	type scored struct {
		key  string
		dist float64
	}
	all := make([]scored, len(dataset))
	for i, v := range dataset {
		all[i] = scored{key: v.Key, dist: measure(query.Values, v.Values)}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })
	if k > len(all) {
		k = len(all)
	}
	keys := make([]string, k)
	for i := 0; i < k; i++ {
		keys[i] = all[i].key
	}
	return keys
}

// recallAtK computes the fraction of ground-truth neighbors that appear in
// the predictions.
func recallAtK(predicted []*lsh.Vector, groundTruth []string) float64 {
	if len(groundTruth) == 0 {
		return 0.0
	}
	predSet := make(map[string]struct{}, len(predicted))
	for _, v := range predicted {
		predSet[v.Key] = struct{}{}
	}
	correct := 0
	for _, key := range groundTruth {
		if _, ok := predSet[key]; ok {
			correct++
		}
	}
	return float64(correct) / float64(len(groundTruth))
}
