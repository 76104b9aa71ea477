package planner

import "github.com/backmassage/pixmaster/internal/config"

// Action describes the per-file processing decision.
type Action int

const (
	ActionEncode Action = iota // Decode, optionally resize, re-encode.
	ActionCopy                 // Byte-for-byte copy; no decode.
)

// String returns the log label for a.
func (a Action) String() string {
	switch a {
	case ActionEncode:
		return "encode"
	case ActionCopy:
		return "copy"
	}
	return "unknown"
}

// FilePlan holds the complete set of decisions for processing a single image.
// It is produced by BuildPlan and consumed by codec.Executor.
type FilePlan struct {
	Action Action

	// Encoding.
	Format   config.Format
	Quality  int  // 0-100; ignored by PNG.
	Lossless bool // WebP only.

	// ResizeWidth is the maximum output width; 0 keeps the source width.
	// Images are never enlarged.
	ResizeWidth int

	// FlattenAlpha composites the image over white before encoding (JPEG
	// cannot store transparency).
	FlattenAlpha bool

	// Note is a human-readable summary of the decisions, for debug logs.
	Note string

	InputPath  string
	OutputPath string
}
