package main

import (
	"github.com/spf13/cobra"

	"astropath/internal/datalab"
	"astropath/internal/tui"
)

// labCmd represents the lab command
var labCmd = &cobra.Command{
	Use:   "lab <file.csv>",
	Short: "Step through k-means convergence interactively",
	Long: `Open a terminal view that animates a k-means run on a CSV dataset one
iteration at a time. Points are colored by their current cluster and
centroid markers move as the partition settles.

Accepts the same column, k and seed flags as the cluster command.`,
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

		history, err := datalab.History(ds, req)
		if err != nil {
			return err
		}

		points, err := ds.Points(req.XColumn, req.YColumn)
		if err != nil {
			return err
		}
		return tui.RunLab(ds.Name, points, history)
	},
}

func init() {
	labCmd.Flags().StringVar(&clusterX, "x", "1", "x-axis column (name or 1-based index)")
	labCmd.Flags().StringVar(&clusterY, "y", "2", "y-axis column (name or 1-based index)")
	labCmd.Flags().IntVarP(&clusterK, "k", "k", 0, "cluster count (default from config)")
	labCmd.Flags().Int64Var(&clusterSeed, "seed", 0, "random seed (0 = non-deterministic)")
	labCmd.Flags().IntVar(&clusterMaxIter, "max-iterations", 0, "iteration bound (default from config)")
	labCmd.Flags().BoolVar(&clusterReseed, "reseed-empty", false, "re-seed empty clusters instead of collapsing to origin")
}
