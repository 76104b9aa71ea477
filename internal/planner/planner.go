package planner

import (
	"fmt"
	"strings"

	"github.com/backmassage/pixmaster/internal/config"
	"github.com/backmassage/pixmaster/internal/probe"
)

// BuildPlan produces a complete FilePlan from config and probe data. This is
// the central decision matrix that the pipeline calls for every file. info
// may be nil for the skip format, which never reads the image.
//
// Flow:
//  1. Decide action (copy for skip, encode otherwise)
//  2. Resolve quality and lossless for the target encoder
//  3. Pass the max width to the codec (downscale only)
//  4. Decide alpha flattening (JPEG targets)
func BuildPlan(cfg *config.Config, info *probe.ImageInfo) *FilePlan {
	plan := &FilePlan{Format: cfg.TargetFormat}
	if info != nil {
		plan.InputPath = info.Path
	}

	// --- 1. Action decision ---
	if cfg.TargetFormat == config.FormatSkip {
		plan.Action = ActionCopy
		plan.Note = "copy (skip format)"
		return plan
	}
	plan.Action = ActionEncode

	// --- 2. Quality ---
	q := ResolveQuality(cfg)
	plan.Quality = q.Quality
	plan.Lossless = q.Lossless
	notes := []string{q.Note}

	// --- 3. Resize ---
	// The bound always goes to the codec, which measures the decoded,
	// auto-oriented image and never enlarges. Probe data only shapes the note.
	if cfg.MaxWidth > 0 {
		plan.ResizeWidth = cfg.MaxWidth
		width, height := info.DisplaySize()
		switch {
		case width <= 0:
			notes = append(notes, fmt.Sprintf("resize to <=%dpx wide", cfg.MaxWidth))
		case NeedsResize(width, cfg.MaxWidth):
			w, h := ScaledSize(width, height, cfg.MaxWidth)
			notes = append(notes, fmt.Sprintf("resize %dx%d -> %dx%d", width, height, w, h))
		}
	}

	// --- 4. Alpha ---
	if cfg.TargetFormat.IsJPEG() && (info == nil || info.MayHaveAlpha()) {
		plan.FlattenAlpha = true
		notes = append(notes, "flatten alpha onto white")
	}

	plan.Note = strings.Join(notes, ", ")
	return plan
}
