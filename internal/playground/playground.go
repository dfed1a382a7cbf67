// Package playground holds the small illustrative demos that accompany
// the Data Lab: a toy nearest-neighbor classifier, a toy z-score
// anomaly detector, and a toy spectral feature extractor. These are
// teaching aids, deliberately simple, not reusable engines.
package playground
