package kmeans

import "errors"

// Common errors
var (
	ErrNoPoints    = errors.New("kmeans: no input points")
	ErrInvalidK    = errors.New("kmeans: k must be positive")
	ErrNoCentroids = errors.New("kmeans: empty centroid set")
	ErrExhausted   = errors.New("kmeans: iterator exhausted")
)
