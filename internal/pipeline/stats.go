package pipeline

import (
	"github.com/google/uuid"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
// Processed, Errors and OutputDir form the run summary; the rest is
// observability.
type RunStats struct {
	RunID     string
	OutputDir string

	Total     int
	Current   int
	Processed int // Converted, copied, or dry-run.
	Skipped   int // Destination existed and overwrite is off. Never an error.
	Errors    int

	TotalInputBytes  int64
	TotalOutputBytes int64
}

func newRunStats(outputDir string, total int) RunStats {
	return RunStats{
		RunID:     uuid.NewString(),
		OutputDir: outputDir,
		Total:     total,
	}
}

// record folds one file result into the counters.
func (s *RunStats) record(r fileResult) {
	switch r.outcome {
	case OutcomeConverted, OutcomeCopied:
		s.Processed++
		s.TotalInputBytes += r.inBytes
		s.TotalOutputBytes += r.outBytes
	case OutcomeDryRun:
		s.Processed++
	case OutcomeSkippedExisting:
		s.Skipped++
	case OutcomeFailed:
		s.Errors++
	}
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
