package kmeans

import (
	"math"
	"math/rand"
	"time"
)

// Point is a caller-extracted (x, y) feature pair. Feature selection —
// mapping a raw record or CSV row onto the two axes — happens before the
// engine is invoked, keeping the core purely numeric.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is the outcome of one clustering run. Assignments[i] is the
// index into Centroids of the cluster that points[i] belongs to.
// Iterations counts completed refinement passes; Converged reports
// whether the run stopped because no assignment changed (as opposed to
// hitting the iteration bound).
type Result struct {
	Assignments []int   `json:"assignments"`
	Centroids   []Point `json:"centroids"`
	Iterations  int     `json:"iterations"`
	Converged   bool    `json:"converged"`
}

// Cluster partitions points into k clusters using Lloyd's algorithm:
// random initial centroids sampled without replacement, then alternating
// nearest-centroid assignment and mean-update passes until no assignment
// changes or the iteration bound is reached.
//
// If k exceeds len(points) the effective cluster count is reduced to
// len(points), so every returned centroid starts from a distinct sample.
// Empty input and non-positive k are argument errors.
func Cluster(points []Point, k int, opts ...Option) (*Result, error) {
	r, err := newRun(points, k, opts...)
	if err != nil {
		return nil, err
	}

	for !r.done {
		r.step()
	}
	return r.snapshot(), nil
}

// Assign maps each point to its nearest centroid without touching
// centroid state. It is the assignment pass in isolation, useful for
// classifying new points against an already-trained centroid set.
// Ties go to the lowest centroid index.
func Assign(points []Point, centroids []Point) ([]int, error) {
	if len(centroids) == 0 {
		return nil, ErrNoCentroids
	}

	assignments := make([]int, len(points))
	for i, p := range points {
		assignments[i] = nearest(p, centroids)
	}
	return assignments, nil
}

// run holds the mutable state of one clustering run. Both the eager
// Cluster entry point and the step-through Iterator drive the same loop
// so their outputs are identical for the same seed.
type run struct {
	cfg       runConfig
	points    []Point
	centroids []Point
	assigned  []int
	iter      int
	done      bool
	converged bool
}

func newRun(points []Point, k int, opts ...Option) (*run, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}

	cfg := runConfig{maxIterations: defaultMaxIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Silently reduce k so initialization can sample k distinct points.
	if k > len(points) {
		k = len(points)
	}

	// Initialize centroids by sampling without replacement. Plain
	// uniform draws, no k-means++ seeding.
	perm := cfg.rng.Perm(len(points))
	centroids := make([]Point, k)
	for i := 0; i < k; i++ {
		centroids[i] = points[perm[i]]
	}

	assigned := make([]int, len(points))
	for i := range assigned {
		assigned[i] = -1
	}

	return &run{
		cfg:       cfg,
		points:    points,
		centroids: centroids,
		assigned:  assigned,
	}, nil
}

// step performs one refinement pass: assignment, then (unless converged)
// centroid update. It marks the run done on convergence or when the
// iteration bound is reached.
func (r *run) step() {
	if r.done {
		return
	}

	// Assignment pass
	changed := false
	for i, p := range r.points {
		best := nearest(p, r.centroids)
		if r.assigned[i] != best {
			r.assigned[i] = best
			changed = true
		}
	}

	if !changed {
		r.done = true
		r.converged = true
		return
	}

	// Update pass: each centroid becomes the mean of its members.
	k := len(r.centroids)
	sumX := make([]float64, k)
	sumY := make([]float64, k)
	counts := make([]int, k)
	for i, p := range r.points {
		c := r.assigned[i]
		sumX[c] += p.X
		sumY[c] += p.Y
		counts[c]++
	}

	for j := 0; j < k; j++ {
		if counts[j] > 0 {
			r.centroids[j] = Point{
				X: sumX[j] / float64(counts[j]),
				Y: sumY[j] / float64(counts[j]),
			}
			continue
		}
		if r.cfg.reseedEmpty {
			r.centroids[j] = r.points[r.cfg.rng.Intn(len(r.points))]
		} else {
			// Historical Data Lab behavior: an empty cluster
			// collapses to the origin.
			r.centroids[j] = Point{}
		}
	}

	r.iter++
	if r.iter >= r.cfg.maxIterations {
		r.done = true
	}
}

// snapshot copies the current run state into an immutable Result.
func (r *run) snapshot() *Result {
	assignments := make([]int, len(r.assigned))
	copy(assignments, r.assigned)
	centroids := make([]Point, len(r.centroids))
	copy(centroids, r.centroids)

	return &Result{
		Assignments: assignments,
		Centroids:   centroids,
		Iterations:  r.iter,
		Converged:   r.converged,
	}
}

// nearest returns the index of the centroid closest to p. Strict <
// comparison breaks distance ties toward the lowest index.
func nearest(p Point, centroids []Point) int {
	best := 0
	min := math.Inf(1)
	for j, c := range centroids {
		if d := distance(p, c); d < min {
			min = d
			best = j
		}
	}
	return best
}

// distance is the Euclidean distance between two points.
func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
