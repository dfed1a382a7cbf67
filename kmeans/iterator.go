package kmeans

// Iterator steps through a clustering run one refinement pass at a time,
// yielding a snapshot after every pass. It exists for callers that
// animate convergence (the playground's step-through view) instead of
// consuming only the final partition.
//
// The sequence is finite and non-restartable: once Next reports done the
// run is exhausted. Driving an Iterator to completion produces exactly
// the snapshots that Cluster would have passed through with the same
// seed, ending in the same final Result.
type Iterator struct {
	run *run
}

// Iterate validates the inputs, performs centroid initialization, and
// returns an iterator positioned before the first refinement pass. It
// accepts the same arguments and options as Cluster.
func Iterate(points []Point, k int, opts ...Option) (*Iterator, error) {
	r, err := newRun(points, k, opts...)
	if err != nil {
		return nil, err
	}
	return &Iterator{run: r}, nil
}

// Next performs one refinement pass and returns the resulting snapshot.
// The final snapshot has Converged set (or Iterations equal to the
// bound); after that, Next returns ErrExhausted.
func (it *Iterator) Next() (*Result, error) {
	if it.run.done {
		return nil, ErrExhausted
	}

	it.run.step()
	return it.run.snapshot(), nil
}

// Done reports whether the run has terminated.
func (it *Iterator) Done() bool {
	return it.run.done
}

// Collect drains the iterator, returning every remaining snapshot in
// order. The last element is the final clustering result.
func (it *Iterator) Collect() []*Result {
	var history []*Result
	for !it.run.done {
		it.run.step()
		history = append(history, it.run.snapshot())
	}
	return history
}

// InitialCentroids returns a copy of the randomly sampled starting
// centroids, before any refinement pass has run.
func (it *Iterator) InitialCentroids() []Point {
	centroids := make([]Point, len(it.run.centroids))
	copy(centroids, it.run.centroids)
	return centroids
}
