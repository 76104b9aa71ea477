package pipeline

import (
	"github.com/backmassage/pixmaster/internal/config"
	"github.com/backmassage/pixmaster/internal/naming"
)

// FileTask holds the derived paths for one discovered file.
type FileTask struct {
	SourcePath      string // Absolute.
	RelativePath    string // Relative to the input root.
	DestinationPath string // Same relative path under the output root.
}

// NewFileTask derives the relative and destination paths for source, which
// must live under inputRoot.
func NewFileTask(inputRoot, outputRoot, source string, format config.Format) (FileTask, error) {
	rel, err := naming.RelativePath(inputRoot, source)
	if err != nil {
		return FileTask{}, err
	}
	return FileTask{
		SourcePath:      source,
		RelativePath:    rel,
		DestinationPath: naming.DestinationPath(outputRoot, rel, format),
	}, nil
}

// Outcome is the single category each processed file folds into.
type Outcome int

const (
	OutcomeConverted       Outcome = iota // Decoded, re-encoded, written.
	OutcomeCopied                         // Raw byte copy (skip format).
	OutcomeSkippedExisting                // Destination existed and overwrite is off.
	OutcomeDryRun                         // Planned only.
	OutcomeFailed                         // Any per-file error.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeCopied:
		return "copied"
	case OutcomeSkippedExisting:
		return "skipped-existing"
	case OutcomeDryRun:
		return "dry-run"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}
