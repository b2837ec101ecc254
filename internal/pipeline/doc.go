// Package pipeline implements the per-metric transformation pipeline:
// column normalization, enum decoding, fragment merging and the
// metric-specific aggregation rules, plus the runner that drives a full
// cleaning pass over an export directory.
//
// All failure modes are recovered locally. Missing columns skip the step
// that needs them, unparseable values become the empty missing-value
// sentinel, unmapped enum codes follow their rule's drop or keep policy,
// and a metric with no matching files is silently skipped.
package pipeline
