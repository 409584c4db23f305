// Package estimate holds the pure lookup, budget and ranking functions behind
// the explore page. Nothing here does I/O or keeps state; every function works
// on the slices it is given and never mutates them, so callers may share one
// dataset snapshot across goroutines.
//
// Lookups take the first matching row in input order. Datasets are expected to
// carry at most one row per key; when they do not, the earlier row wins.
package estimate
