package datalab

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// clusterPalette colors the cluster series. Indices past the palette
// wrap around, which only matters for unusually large k.
var clusterPalette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

// WriteScatterChart renders a report as a self-contained HTML scatter
// plot: one series per cluster, colored by cluster index, plus centroid
// markers. This is the Go rendition of the Data Lab's in-browser plot.
func WriteScatterChart(w io.Writer, report *Report) error {
	if report == nil || report.Result == nil {
		return fmt.Errorf("nothing to chart")
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "AstroPath Data Lab",
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s — k-means (k=%d)", report.Dataset, report.EffectiveK),
			Subtitle: fmt.Sprintf("%d points, %d iterations, converged=%v",
				len(report.Result.Assignments), report.Result.Iterations, report.Result.Converged),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: report.XColumn, NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: report.YColumn, NameLocation: "middle", NameGap: 40}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	// One series per cluster so the legend doubles as a cluster key.
	for c := 0; c < report.EffectiveK; c++ {
		var data []opts.ScatterData
		for i, a := range report.Result.Assignments {
			if a != c {
				continue
			}
			p := report.points[i]
			data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
		}
		scatter.AddSeries(
			fmt.Sprintf("cluster %d", c),
			data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: clusterPalette[c%len(clusterPalette)]}),
		)
	}

	centroids := make([]opts.ScatterData, len(report.Result.Centroids))
	for i, c := range report.Result.Centroids {
		centroids[i] = opts.ScatterData{
			Value:      []interface{}{c.X, c.Y},
			Symbol:     "diamond",
			SymbolSize: 16,
		}
	}
	scatter.AddSeries(
		"centroids",
		centroids,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#333333"}),
	)

	return scatter.Render(w)
}
