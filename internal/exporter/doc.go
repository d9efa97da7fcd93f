// Package exporter writes the artifacts of a pipeline run.
//
// CSVWriter encodes tables and hands the bytes to a files.Manager, with an
// optional UTF-8 BOM for Excel. On top of it the Reporter renders, in order:
//
//   - dashboard charts through a charts.Plotter
//   - the cleaned data CSV
//   - the per-group summary CSV
//   - the narrative text report
//   - the summary workbook (xlsx)
//   - the processing log
//
// Example usage:
//
//	reporter := exporter.NewReporter(cfg, charts.NewGonumPlotter(), logger)
//	artifacts, err := reporter.Report(ctx, exporter.ReportInput{
//		Table:      cleaned,
//		Aggregates: aggregates,
//		Log:        log,
//	})
package exporter
