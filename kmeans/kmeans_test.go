package kmeans

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helper functions ---

// twoBlobs returns two well-separated groups of points: count points
// around (0,0) and count points around (10,10).
func twoBlobs(count int) []Point {
	points := make([]Point, 0, 2*count)
	for i := 0; i < count; i++ {
		offset := float64(i) * 0.1
		points = append(points, Point{X: offset, Y: -offset})
		points = append(points, Point{X: 10 + offset, Y: 10 - offset})
	}
	return points
}

// assertValidPartition checks the structural invariants every result
// must satisfy: one assignment per point, every assignment a valid
// centroid index, and a centroid list of the effective cluster count.
func assertValidPartition(t *testing.T, points []Point, k int, res *Result) {
	t.Helper()

	effectiveK := k
	if effectiveK > len(points) {
		effectiveK = len(points)
	}

	require.Len(t, res.Assignments, len(points))
	require.Len(t, res.Centroids, effectiveK)
	for i, a := range res.Assignments {
		assert.GreaterOrEqual(t, a, 0, "point %d has negative assignment", i)
		assert.Less(t, a, effectiveK, "point %d assigned out of range", i)
	}
}

// --- Tests ---

func TestClusterArgumentValidation(t *testing.T) {
	t.Run("empty points", func(t *testing.T) {
		res, err := Cluster(nil, 3)
		assert.ErrorIs(t, err, ErrNoPoints)
		assert.Nil(t, res)
	})

	t.Run("zero k", func(t *testing.T) {
		res, err := Cluster([]Point{{X: 1, Y: 2}}, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
		assert.Nil(t, res)
	})

	t.Run("negative k", func(t *testing.T) {
		res, err := Cluster([]Point{{X: 1, Y: 2}}, -4)
		assert.ErrorIs(t, err, ErrInvalidK)
		assert.Nil(t, res)
	})
}

func TestClusterCardinality(t *testing.T) {
	points := twoBlobs(10)

	for _, k := range []int{1, 2, 3, 5} {
		res, err := Cluster(points, k, WithSeed(42))
		require.NoError(t, err)
		assertValidPartition(t, points, k, res)
	}
}

func TestClusterSinglePoint(t *testing.T) {
	points := []Point{{X: 3.5, Y: -1.25}}

	res, err := Cluster(points, 1, WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.Assignments)
	require.Len(t, res.Centroids, 1)
	assert.Equal(t, points[0], res.Centroids[0])
	assert.True(t, res.Converged)
}

func TestClusterKOne(t *testing.T) {
	// k=1 must yield a single centroid at the mean of all points.
	points := []Point{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 4}, {X: 2, Y: 4},
	}

	res, err := Cluster(points, 1, WithSeed(7))
	require.NoError(t, err)

	require.Len(t, res.Centroids, 1)
	assert.InDelta(t, 1.0, res.Centroids[0].X, 1e-9)
	assert.InDelta(t, 2.0, res.Centroids[0].Y, 1e-9)
	for _, a := range res.Assignments {
		assert.Equal(t, 0, a)
	}
	assert.True(t, res.Converged)
}

func TestClusterKExceedsPointCount(t *testing.T) {
	// Effective k silently reduces to the point count so every
	// centroid starts from a distinct sample.
	points := []Point{{X: 0, Y: 0}, {X: 9, Y: 9}}

	res, err := Cluster(points, 5, WithSeed(3))
	require.NoError(t, err)

	assert.Len(t, res.Centroids, 2)
	assertValidPartition(t, points, 5, res)
	assert.NotEqual(t, res.Assignments[0], res.Assignments[1],
		"distinct points should own one cluster each when k >= n")
}

func TestClusterTwoPairScenario(t *testing.T) {
	// Four points forming two tight pairs. When initialization picks
	// one centroid from each pair, convergence must land on centroids
	// (0, 0.5) and (10, 0.5) with the pairs split between them.
	points := []Point{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 0}, {X: 10, Y: 1},
	}

	found := false
	for seed := int64(0); seed < 100 && !found; seed++ {
		it, err := Iterate(points, 2, WithSeed(seed))
		require.NoError(t, err)

		init := it.InitialCentroids()
		if (init[0].X < 5) == (init[1].X < 5) {
			continue // both starting centroids in the same pair
		}
		found = true

		history := it.Collect()
		require.NotEmpty(t, history)
		res := history[len(history)-1]
		require.True(t, res.Converged)

		// Identify which centroid ended up on which side.
		left, right := 0, 1
		if res.Centroids[0].X > 5 {
			left, right = 1, 0
		}
		assert.InDelta(t, 0.0, res.Centroids[left].X, 1e-9)
		assert.InDelta(t, 0.5, res.Centroids[left].Y, 1e-9)
		assert.InDelta(t, 10.0, res.Centroids[right].X, 1e-9)
		assert.InDelta(t, 0.5, res.Centroids[right].Y, 1e-9)

		assert.Equal(t, res.Assignments[0], res.Assignments[1])
		assert.Equal(t, res.Assignments[2], res.Assignments[3])
		assert.NotEqual(t, res.Assignments[0], res.Assignments[2])
	}
	require.True(t, found, "no seed produced a cross-pair initialization")
}

func TestClusterNearestCentroidProperty(t *testing.T) {
	points := twoBlobs(15)

	res, err := Cluster(points, 3, WithSeed(11), WithReseedEmptyClusters())
	require.NoError(t, err)
	require.True(t, res.Converged)

	for i, p := range points {
		assigned := distance(p, res.Centroids[res.Assignments[i]])
		for j, c := range res.Centroids {
			assert.LessOrEqual(t, assigned, distance(p, c)+1e-12,
				"point %d assigned to %d but centroid %d is closer", i, res.Assignments[i], j)
		}
	}
}

func TestClusterIdempotentOnConvergedResult(t *testing.T) {
	// Re-running the assignment pass against a converged centroid set
	// must reproduce the converged assignments exactly.
	points := twoBlobs(12)

	res, err := Cluster(points, 2, WithSeed(5))
	require.NoError(t, err)
	require.True(t, res.Converged)

	again, err := Assign(points, res.Centroids)
	require.NoError(t, err)
	assert.Equal(t, res.Assignments, again)
}

func TestClusterIterationBound(t *testing.T) {
	points := twoBlobs(20)

	res, err := Cluster(points, 4, WithSeed(9), WithMaxIterations(1))
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Iterations, 1)
	assertValidPartition(t, points, 4, res)
}

func TestClusterDeterministicWithSeed(t *testing.T) {
	points := twoBlobs(10)

	first, err := Cluster(points, 3, WithSeed(1234))
	require.NoError(t, err)
	second, err := Cluster(points, 3, WithSeed(1234))
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Centroids, second.Centroids)
	assert.Equal(t, first.Iterations, second.Iterations)
}

func TestClusterDoesNotMutateInput(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 0}, {X: 10, Y: 1},
	}
	original := make([]Point, len(points))
	copy(original, points)

	_, err := Cluster(points, 2, WithSeed(2))
	require.NoError(t, err)
	assert.Equal(t, original, points)
}

func TestClusterEmptyClusterPolicies(t *testing.T) {
	// Two coincident points with k=2: the tie-break sends both to the
	// first centroid, leaving the second cluster empty on update.
	points := []Point{{X: 5, Y: 5}, {X: 5, Y: 5}}

	t.Run("default collapses to origin", func(t *testing.T) {
		res, err := Cluster(points, 2, WithSeed(6))
		require.NoError(t, err)
		require.Len(t, res.Centroids, 2)

		assert.Equal(t, Point{X: 5, Y: 5}, res.Centroids[0])
		assert.Equal(t, Point{}, res.Centroids[1])
		assert.Equal(t, []int{0, 0}, res.Assignments)
	})

	t.Run("reseed picks a real point", func(t *testing.T) {
		res, err := Cluster(points, 2, WithSeed(6), WithReseedEmptyClusters())
		require.NoError(t, err)
		require.Len(t, res.Centroids, 2)

		// The only point available for re-seeding is (5,5).
		assert.Equal(t, Point{X: 5, Y: 5}, res.Centroids[1])
	})
}

func TestAssign(t *testing.T) {
	t.Run("empty centroids", func(t *testing.T) {
		_, err := Assign([]Point{{X: 1, Y: 1}}, nil)
		assert.ErrorIs(t, err, ErrNoCentroids)
	})

	t.Run("ties break to lowest index", func(t *testing.T) {
		centroids := []Point{{X: -1, Y: 0}, {X: 1, Y: 0}}
		got, err := Assign([]Point{{X: 0, Y: 0}}, centroids)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, got)
	})

	t.Run("nearest wins", func(t *testing.T) {
		centroids := []Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
		got, err := Assign([]Point{{X: 1, Y: 1}, {X: 9, Y: 9}}, centroids)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, got)
	})
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4}), 1e-12)
	assert.InDelta(t, 0.0, distance(Point{X: 2, Y: 2}, Point{X: 2, Y: 2}), 1e-12)
	assert.InDelta(t, math.Sqrt2, distance(Point{X: 0, Y: 0}, Point{X: 1, Y: 1}), 1e-12)
}
