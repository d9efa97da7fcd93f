// Package pipeline runs the report once: Loader, Cleaner, Aggregator and
// Reporter in sequence, each stage inside its own span.
//
// A run with no usable input stops after the Cleaner, writes only the
// processing log and returns an error matching ErrNoData.
package pipeline
