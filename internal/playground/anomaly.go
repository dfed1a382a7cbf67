package playground

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// defaultZThreshold marks values more than three standard deviations
// from the mean as anomalous, the usual toy rule.
const defaultZThreshold = 3.0

// AnomalyDetector is a toy z-score outlier detector over a single
// numeric series.
type AnomalyDetector struct {
	threshold float64
	mean      float64
	stdDev    float64
	fitted    bool
}

// NewAnomalyDetector creates a detector with the given z-score
// threshold; values <= 0 fall back to the default.
func NewAnomalyDetector(threshold float64) *AnomalyDetector {
	if threshold <= 0 {
		threshold = defaultZThreshold
	}
	return &AnomalyDetector{threshold: threshold}
}

// Fit learns the mean and standard deviation of the training series.
func (d *AnomalyDetector) Fit(values []float64) error {
	if len(values) < 2 {
		return fmt.Errorf("anomaly: need at least 2 values to fit, got %d", len(values))
	}
	d.mean = stat.Mean(values, nil)
	d.stdDev = stat.StdDev(values, nil)
	d.fitted = true
	return nil
}

// Score returns the absolute z-score of a value. When the training
// series is constant, any deviation from it counts as anomalous.
func (d *AnomalyDetector) Score(v float64) float64 {
	if d.stdDev == 0 {
		if v == d.mean {
			return 0
		}
		return d.threshold + 1 // any deviation from a constant series is anomalous
	}
	z := (v - d.mean) / d.stdDev
	if z < 0 {
		z = -z
	}
	return z
}

// IsAnomaly reports whether a value exceeds the z-score threshold.
func (d *AnomalyDetector) IsAnomaly(v float64) bool {
	return d.fitted && d.Score(v) > d.threshold
}

// Detect fits the detector on the series and returns the indices of
// anomalous values.
func (d *AnomalyDetector) Detect(values []float64) ([]int, error) {
	if err := d.Fit(values); err != nil {
		return nil, err
	}
	var anomalies []int
	for i, v := range values {
		if d.IsAnomaly(v) {
			anomalies = append(anomalies, i)
		}
	}
	return anomalies, nil
}
