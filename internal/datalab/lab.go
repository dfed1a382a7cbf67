// Package datalab binds a loaded dataset to the clustering engine and
// produces render-ready output: a run report with per-cluster summaries
// and an HTML scatter chart.
package datalab

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"astropath/internal/dataset"
	"astropath/kmeans"
)

// Request describes one clustering run over a dataset.
type Request struct {
	// XColumn and YColumn select the two feature axes, by name or
	// 1-based index.
	XColumn string `json:"x_column"`
	YColumn string `json:"y_column"`

	// K is the desired cluster count.
	K int `json:"k"`

	// MaxIterations bounds the refinement passes; 0 uses the engine
	// default.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Seed makes the run reproducible when non-zero. Zero means a
	// fresh random initialization per run, matching the Data Lab's
	// interactive behavior.
	Seed int64 `json:"seed,omitempty"`

	// ReseedEmptyClusters switches the degenerate-cluster policy from
	// origin-collapse to re-seeding.
	ReseedEmptyClusters bool `json:"reseed_empty_clusters,omitempty"`
}

// ClusterSummary describes one cluster in a finished run.
type ClusterSummary struct {
	Index    int          `json:"index"`
	Size     int          `json:"size"`
	Share    float64      `json:"share"`
	Centroid kmeans.Point `json:"centroid"`
}

// Duration is a time.Duration that marshals as its string form
// ("12.4ms" rather than raw nanoseconds) so JSON reports stay readable.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Report is the render-ready outcome of a clustering run.
type Report struct {
	RunID      string           `json:"run_id"`
	Dataset    string           `json:"dataset"`
	XColumn    string           `json:"x_column"`
	YColumn    string           `json:"y_column"`
	RequestedK int              `json:"requested_k"`
	EffectiveK int              `json:"effective_k"`
	Result     *kmeans.Result   `json:"result"`
	Clusters   []ClusterSummary `json:"clusters"`
	Elapsed    Duration         `json:"elapsed"`

	points []kmeans.Point
}

// Run executes one clustering run and assembles the report.
func Run(ds *dataset.Dataset, req Request) (*Report, error) {
	points, opts, err := prepare(ds, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := kmeans.Cluster(points, req.K, opts...)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	elapsed := time.Since(start)

	report := &Report{
		RunID:      uuid.NewString(),
		Dataset:    ds.Name,
		XColumn:    req.XColumn,
		YColumn:    req.YColumn,
		RequestedK: req.K,
		EffectiveK: len(result.Centroids),
		Result:     result,
		Clusters:   summarize(result),
		Elapsed:    Duration(elapsed),
		points:     points,
	}

	log.Printf("[DataLab] run %s: %d points, k=%d (effective %d), %d iterations, converged=%v",
		report.RunID[:8], len(points), req.K, report.EffectiveK, result.Iterations, result.Converged)

	return report, nil
}

// History executes one clustering run in step-through mode, returning
// every per-iteration snapshot. The last snapshot is the final result.
func History(ds *dataset.Dataset, req Request) ([]*kmeans.Result, error) {
	points, opts, err := prepare(ds, req)
	if err != nil {
		return nil, err
	}

	it, err := kmeans.Iterate(points, req.K, opts...)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	return it.Collect(), nil
}

// prepare validates the request and extracts the engine inputs.
func prepare(ds *dataset.Dataset, req Request) ([]kmeans.Point, []kmeans.Option, error) {
	if req.K <= 0 {
		return nil, nil, fmt.Errorf("cluster count must be positive, got %d", req.K)
	}

	points, err := ds.Points(req.XColumn, req.YColumn)
	if err != nil {
		return nil, nil, err
	}

	var opts []kmeans.Option
	if req.MaxIterations > 0 {
		opts = append(opts, kmeans.WithMaxIterations(req.MaxIterations))
	}
	if req.Seed != 0 {
		opts = append(opts, kmeans.WithSeed(req.Seed))
	}
	if req.ReseedEmptyClusters {
		opts = append(opts, kmeans.WithReseedEmptyClusters())
	}
	return points, opts, nil
}

// summarize builds per-cluster membership summaries from a result.
func summarize(result *kmeans.Result) []ClusterSummary {
	summaries := make([]ClusterSummary, len(result.Centroids))
	for i, c := range result.Centroids {
		summaries[i] = ClusterSummary{Index: i, Centroid: c}
	}
	for _, a := range result.Assignments {
		summaries[a].Size++
	}

	total := float64(len(result.Assignments))
	for i := range summaries {
		if total > 0 {
			summaries[i].Share = float64(summaries[i].Size) / total
		}
	}
	return summaries
}
