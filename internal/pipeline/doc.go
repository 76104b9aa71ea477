// Package pipeline orchestrates image discovery, per-file conversion, and
// batch summary reporting.
//
//   - Discover: iterative, symlink-safe directory walk filtered by extension (discover.go)
//   - FileTask, Outcome: per-file paths and result categories (task.go)
//   - ConvertAll, Run: the sequential conversion loop and batch entry point (runner.go)
//   - RunStats: counters and byte totals, emitted once per run (stats.go)
//   - Analyze: read-only size/dimension report with outlier flags (analyze.go)
//
// A single file's failure never aborts the batch: it is folded into
// RunStats.Errors and reported once through the logger.
package pipeline
