package kmeans

import "math/rand"

// defaultMaxIterations bounds the number of refinement passes when the
// caller does not override it.
const defaultMaxIterations = 50

// Option configures a clustering run.
type Option func(*runConfig)

// runConfig holds the resolved configuration for one clustering run.
type runConfig struct {
	maxIterations int
	rng           *rand.Rand
	reseedEmpty   bool
}

// WithMaxIterations sets the upper bound on refinement passes.
// Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(c *runConfig) {
		if n >= 1 {
			c.maxIterations = n
		}
	}
}

// WithRand sets the random source used for centroid initialization
// (and for re-seeding empty clusters, when enabled). Injecting a seeded
// source makes runs reproducible; without it each run samples different
// initial centroids and cluster quality varies run to run.
func WithRand(rng *rand.Rand) Option {
	return func(c *runConfig) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithSeed is shorthand for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return func(c *runConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithReseedEmptyClusters changes the degenerate-cluster policy: a
// cluster that receives no points during an update pass gets its
// centroid re-seeded from a randomly chosen input point instead of
// collapsing to the origin. The default (collapse to (0,0)) matches the
// historical behavior of the Data Lab; re-seeding generally produces
// better partitions.
func WithReseedEmptyClusters() Option {
	return func(c *runConfig) {
		c.reseedEmpty = true
	}
}
