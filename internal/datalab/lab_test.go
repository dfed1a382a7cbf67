package datalab

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astropath/internal/dataset"
)

// loadTestDataset builds a small two-group dataset.
func loadTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	csv := `temp,radiation
0.0,0.1
0.2,0.0
0.1,0.2
10.0,10.1
10.2,10.0
10.1,10.2
`
	ds, err := dataset.LoadCSV(strings.NewReader(csv), "habitats.csv")
	require.NoError(t, err)
	return ds
}

func TestRun(t *testing.T) {
	ds := loadTestDataset(t)

	report, err := Run(ds, Request{XColumn: "temp", YColumn: "radiation", K: 2, Seed: 42})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "habitats.csv", report.Dataset)
	assert.Equal(t, 2, report.RequestedK)
	assert.Equal(t, 2, report.EffectiveK)
	require.NotNil(t, report.Result)
	assert.Len(t, report.Result.Assignments, ds.Len())

	// Cluster summaries cover every point exactly once.
	total := 0
	shareSum := 0.0
	for _, c := range report.Clusters {
		total += c.Size
		shareSum += c.Share
	}
	assert.Equal(t, ds.Len(), total)
	assert.InDelta(t, 1.0, shareSum, 1e-9)
}

func TestReportElapsedMarshalsReadably(t *testing.T) {
	ds := loadTestDataset(t)

	report, err := Run(ds, Request{XColumn: "temp", YColumn: "radiation", K: 2, Seed: 42})
	require.NoError(t, err)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"elapsed":"`+report.Elapsed.String()+`"`)

	var back Report
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, report.Elapsed, back.Elapsed)

	var bad Duration
	assert.Error(t, bad.UnmarshalJSON([]byte(`"not a duration"`)))
}

func TestRunValidation(t *testing.T) {
	ds := loadTestDataset(t)

	t.Run("bad k", func(t *testing.T) {
		_, err := Run(ds, Request{XColumn: "temp", YColumn: "radiation", K: 0})
		assert.Error(t, err)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := Run(ds, Request{XColumn: "ph", YColumn: "radiation", K: 2})
		assert.Error(t, err)
	})
}

func TestRunReproducibleWithSeed(t *testing.T) {
	ds := loadTestDataset(t)
	req := Request{XColumn: "temp", YColumn: "radiation", K: 2, Seed: 7}

	first, err := Run(ds, req)
	require.NoError(t, err)
	second, err := Run(ds, req)
	require.NoError(t, err)

	assert.Equal(t, first.Result.Assignments, second.Result.Assignments)
	assert.Equal(t, first.Result.Centroids, second.Result.Centroids)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestHistory(t *testing.T) {
	ds := loadTestDataset(t)

	history, err := History(ds, Request{XColumn: "temp", YColumn: "radiation", K: 2, Seed: 42})
	require.NoError(t, err)
	require.NotEmpty(t, history)

	final := history[len(history)-1]
	assert.True(t, final.Converged)

	// The final snapshot matches an eager run with the same seed.
	report, err := Run(ds, Request{XColumn: "temp", YColumn: "radiation", K: 2, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, report.Result.Assignments, final.Assignments)
	assert.Equal(t, report.Result.Centroids, final.Centroids)
}

func TestWriteScatterChart(t *testing.T) {
	ds := loadTestDataset(t)

	report, err := Run(ds, Request{XColumn: "temp", YColumn: "radiation", K: 2, Seed: 42})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteScatterChart(&buf, report))

	html := buf.String()
	assert.Contains(t, html, "cluster 0")
	assert.Contains(t, html, "cluster 1")
	assert.Contains(t, html, "centroids")
	assert.Contains(t, html, "habitats.csv")

	t.Run("nil report", func(t *testing.T) {
		assert.Error(t, WriteScatterChart(&bytes.Buffer{}, nil))
	})
}
