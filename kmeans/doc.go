// Package kmeans implements 2D k-means clustering via Lloyd's algorithm.
//
// It powers the Data Lab CSV clustering flow and the step-through
// playground animation. The engine is a pure function of its inputs and
// the injected random source: callers own the input points (never
// mutated) and receive ownership of the returned result.
package kmeans
