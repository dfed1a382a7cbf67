package playground

import (
	"fmt"
	"math"
	"sort"
)

// LabeledPoint is a 2D training sample with a class label.
type LabeledPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// KNNClassifier is a toy k-nearest-neighbor classifier over 2D points.
type KNNClassifier struct {
	k       int
	samples []LabeledPoint
}

// NewKNNClassifier builds a classifier from labeled samples. k is
// capped at the sample count.
func NewKNNClassifier(k int, samples []LabeledPoint) (*KNNClassifier, error) {
	if k <= 0 {
		return nil, fmt.Errorf("knn: k must be positive, got %d", k)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("knn: no training samples")
	}
	if k > len(samples) {
		k = len(samples)
	}
	return &KNNClassifier{k: k, samples: samples}, nil
}

// Classify returns the majority label among the k nearest training
// samples. Vote ties resolve to the label of the nearer neighbor.
func (c *KNNClassifier) Classify(x, y float64) string {
	type neighbor struct {
		dist  float64
		label string
	}

	neighbors := make([]neighbor, len(c.samples))
	for i, s := range c.samples {
		dx, dy := s.X-x, s.Y-y
		neighbors[i] = neighbor{dist: math.Sqrt(dx*dx + dy*dy), label: s.Label}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].dist < neighbors[j].dist
	})

	votes := make(map[string]int)
	for _, n := range neighbors[:c.k] {
		votes[n.label]++
	}

	best := ""
	bestVotes := 0
	for _, n := range neighbors[:c.k] { // iterate in distance order for stable ties
		if v := votes[n.label]; v > bestVotes {
			bestVotes = v
			best = n.label
		}
	}
	return best
}
