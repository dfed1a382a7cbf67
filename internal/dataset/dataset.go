// Package dataset loads numeric CSV data and extracts (x, y) feature
// pairs for the clustering engine. The engine itself never sees raw
// records: column selection and numeric validation happen here, on the
// caller side of the contract.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"astropath/kmeans"
)

// Dataset is an in-memory table of numeric rows with named columns.
type Dataset struct {
	// Name identifies the dataset in reports and chart titles,
	// typically the source filename.
	Name string `json:"name"`

	// Columns holds the column names, either from the CSV header or
	// generated (col1, col2, ...) when no header is present.
	Columns []string `json:"columns"`

	// Rows holds the numeric cells, one slice per record.
	Rows [][]float64 `json:"rows"`
}

// LoadCSV parses numeric CSV content into a Dataset. If the first row
// contains any non-numeric cell it is treated as a header; otherwise
// column names are generated. Every data cell must parse as a finite
// float64 — NaN and infinities are rejected here so the engine never
// has to handle them.
func LoadCSV(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // width is validated per row below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %q is empty", name)
	}

	ds := &Dataset{Name: name}

	start := 0
	if isHeaderRow(records[0]) {
		ds.Columns = make([]string, len(records[0]))
		for i, c := range records[0] {
			ds.Columns[i] = strings.TrimSpace(c)
		}
		start = 1
	} else {
		ds.Columns = make([]string, len(records[0]))
		for i := range records[0] {
			ds.Columns[i] = fmt.Sprintf("col%d", i+1)
		}
	}

	width := len(ds.Columns)
	for line := start; line < len(records); line++ {
		record := records[line]
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue // blank line
		}
		if len(record) != width {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", line+1, len(record), width)
		}

		row := make([]float64, width)
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %q is not numeric", line+1, ds.Columns[i], cell)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d column %q: value must be finite", line+1, ds.Columns[i])
			}
			row[i] = v
		}
		ds.Rows = append(ds.Rows, row)
	}

	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("dataset %q has no data rows", name)
	}
	return ds, nil
}

// isHeaderRow reports whether a CSV row looks like a header: at least
// one cell that does not parse as a number.
func isHeaderRow(record []string) bool {
	for _, cell := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return true
		}
	}
	return false
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex resolves a column reference, which may be a column name
// or a 1-based index string (matching how the Data Lab UI labels
// unnamed columns).
func (d *Dataset) ColumnIndex(ref string) (int, error) {
	for i, name := range d.Columns {
		if strings.EqualFold(name, ref) {
			return i, nil
		}
	}
	if idx, err := strconv.Atoi(ref); err == nil && idx >= 1 && idx <= len(d.Columns) {
		return idx - 1, nil
	}
	return -1, fmt.Errorf("no column %q (have: %s)", ref, strings.Join(d.Columns, ", "))
}

// Points extracts the (x, y) feature pairs for two columns. This is the
// typed extraction step the clustering engine expects its caller to
// perform.
func (d *Dataset) Points(xRef, yRef string) ([]kmeans.Point, error) {
	xi, err := d.ColumnIndex(xRef)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	yi, err := d.ColumnIndex(yRef)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}

	points := make([]kmeans.Point, len(d.Rows))
	for i, row := range d.Rows {
		points[i] = kmeans.Point{X: row[xi], Y: row[yi]}
	}
	return points, nil
}

// ColumnValues returns all values of one column.
func (d *Dataset) ColumnValues(ref string) ([]float64, error) {
	idx, err := d.ColumnIndex(ref)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values, nil
}
