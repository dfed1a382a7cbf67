package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"astropath/internal/config"
	"astropath/internal/datalab"
	"astropath/internal/dataset"
)

var (
	clusterX       string
	clusterY       string
	clusterK       int
	clusterSeed    int64
	clusterMaxIter int
	clusterReseed  bool
	clusterChart   string
	clusterJSON    bool
	clusterSteps   bool
)

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster <file.csv>",
	Short: "Cluster a CSV dataset with k-means",
	Long: `Cluster a numeric CSV dataset with k-means over two columns and print
a per-cluster summary. Optionally write an HTML scatter chart or print
the iteration-by-iteration history.

Columns are referenced by header name or 1-based index. A fixed --seed
makes the run reproducible; without one every run samples fresh initial
centroids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		req, err := buildRequest()
		if err != nil {
			return err
		}

		if clusterSteps {
			return runSteps(ds, req)
		}

		report, err := datalab.Run(ds, req)
		if err != nil {
			return err
		}

		if clusterJSON {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			printReport(report)
		}

		if clusterChart != "" {
			f, err := os.Create(clusterChart)
			if err != nil {
				return fmt.Errorf("failed to create chart file: %w", err)
			}
			defer f.Close()
			if err := datalab.WriteScatterChart(f, report); err != nil {
				return err
			}
			fmt.Printf("Chart written to %s\n", clusterChart)
		}
		return nil
	},
}

func init() {
	clusterCmd.Flags().StringVar(&clusterX, "x", "1", "x-axis column (name or 1-based index)")
	clusterCmd.Flags().StringVar(&clusterY, "y", "2", "y-axis column (name or 1-based index)")
	clusterCmd.Flags().IntVarP(&clusterK, "k", "k", 0, "cluster count (default from config)")
	clusterCmd.Flags().Int64Var(&clusterSeed, "seed", 0, "random seed (0 = non-deterministic)")
	clusterCmd.Flags().IntVar(&clusterMaxIter, "max-iterations", 0, "iteration bound (default from config)")
	clusterCmd.Flags().BoolVar(&clusterReseed, "reseed-empty", false, "re-seed empty clusters instead of collapsing to origin")
	clusterCmd.Flags().StringVar(&clusterChart, "chart", "", "write an HTML scatter chart to this path")
	clusterCmd.Flags().BoolVar(&clusterJSON, "json", false, "print the full report as JSON")
	clusterCmd.Flags().BoolVar(&clusterSteps, "steps", false, "print every iteration instead of just the result")

	// --steps replaces the report output entirely, so the report-only
	// output flags make no sense alongside it.
	clusterCmd.MarkFlagsMutuallyExclusive("steps", "chart")
	clusterCmd.MarkFlagsMutuallyExclusive("steps", "json")
}

// loadDataset opens and parses a CSV file.
func loadDataset(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return dataset.LoadCSV(f, path)
}

// buildRequest merges flags with config defaults.
func buildRequest() (datalab.Request, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return datalab.Request{}, err
	}

	req := datalab.Request{
		XColumn:             clusterX,
		YColumn:             clusterY,
		K:                   clusterK,
		Seed:                clusterSeed,
		MaxIterations:       clusterMaxIter,
		ReseedEmptyClusters: clusterReseed || cfg.Lab.ReseedEmptyClusters,
	}
	if req.K == 0 {
		req.K = cfg.Lab.DefaultK
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = cfg.Lab.MaxIterations
	}
	if req.Seed == 0 {
		req.Seed = cfg.Lab.Seed
	}
	return req, nil
}

// runSteps prints the per-iteration history.
func runSteps(ds *dataset.Dataset, req datalab.Request) error {
	history, err := datalab.History(ds, req)
	if err != nil {
		return err
	}

	for i, snap := range history {
		status := ""
		if snap.Converged {
			status = "  (converged)"
		}
		fmt.Printf("iteration %d%s\n", i+1, status)
		for j, c := range snap.Centroids {
			fmt.Printf("  centroid %d: (%.4f, %.4f)\n", j, c.X, c.Y)
		}
	}
	return nil
}

// printReport renders the run summary as text.
func printReport(r *datalab.Report) {
	fmt.Printf("dataset:    %s (%d points)\n", r.Dataset, len(r.Result.Assignments))
	fmt.Printf("axes:       %s × %s\n", r.XColumn, r.YColumn)
	fmt.Printf("k:          %d (effective %d)\n", r.RequestedK, r.EffectiveK)
	fmt.Printf("iterations: %d, converged=%v, elapsed=%s\n\n", r.Result.Iterations, r.Result.Converged, r.Elapsed)

	for _, c := range r.Clusters {
		fmt.Printf("cluster %d: %4d points (%5.1f%%)  centroid (%.4f, %.4f)\n",
			c.Index, c.Size, c.Share*100, c.Centroid.X, c.Centroid.Y)
	}
}
