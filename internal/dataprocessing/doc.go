// Package dataprocessing implements the loading, cleaning and aggregation
// stages of the energy report pipeline.
//
// # Architecture
//
// The package is organized into three stages, each consuming only the
// previous stage's output:
//
// 1. Loader: reads every CSV/XLSX file of the input directory into a
// UnifiedTable and a ProcessingLog
// 2. Cleaner: coerces timestamps and values, drops unusable records and
// sorts by time
// 3. Aggregator: group summaries, time-bucketed series and the merged
// cross-group tables
//
// # Usage
//
//	loaded := dataprocessing.NewLoader(cfg.Input, logger).Load(ctx)
//	clean, stats := dataprocessing.NewCleaner(cfg, logger).Clean(ctx, loaded.Table)
//	keys, _ := dataprocessing.SeriesKeys(cfg.Aggregation, dataprocessing.DailySum)
//	agg := dataprocessing.NewAggregator(keys, logger).Aggregate(ctx, clean)
//
// # Bucket gaps
//
// Sum series carry empty buckets between a group's first and last bucket
// as zero. Mean and max series omit empty buckets. The merged tables never
// zero-fill: a group without a point at a bucket gets domain.NoData.
//
// # Error Handling
//
// Input problems never surface as errors: the loader records them in the
// ProcessingLog and skips the file, and the cleaner drops bad records.
package dataprocessing
