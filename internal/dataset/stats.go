package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds descriptive statistics for one column, shown in
// the Data Lab before the user picks clustering axes.
type ColumnSummary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes descriptive statistics for every column.
func (d *Dataset) Summarize() []ColumnSummary {
	summaries := make([]ColumnSummary, len(d.Columns))
	for i, name := range d.Columns {
		values := make([]float64, len(d.Rows))
		for r, row := range d.Rows {
			values[r] = row[i]
		}

		s := ColumnSummary{
			Name:  name,
			Count: len(values),
			Mean:  stat.Mean(values, nil),
			Min:   floats.Min(values),
			Max:   floats.Max(values),
		}
		if len(values) > 1 {
			s.StdDev = stat.StdDev(values, nil)
		}
		summaries[i] = s
	}
	return summaries
}
