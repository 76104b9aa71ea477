package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/pixmaster/internal/codec"
	"github.com/backmassage/pixmaster/internal/config"
	"github.com/backmassage/pixmaster/internal/display"
	"github.com/backmassage/pixmaster/internal/logging"
	"github.com/backmassage/pixmaster/internal/naming"
	"github.com/backmassage/pixmaster/internal/planner"
	"github.com/backmassage/pixmaster/internal/probe"
)

// fileResult is the tagged result of one file: an outcome plus, for
// failures, the error. ConvertAll folds it into RunStats.
type fileResult struct {
	outcome  Outcome
	task     FileTask
	inBytes  int64
	outBytes int64
	width    int // Output dimensions (converted files only).
	height   int
	elapsed  time.Duration
	err      error
}

func (r fileResult) fail(stage Stage, err error) fileResult {
	r.outcome = OutcomeFailed
	r.err = &FileError{Path: r.task.SourcePath, Stage: stage, Err: err}
	return r
}

// Run is the top-level batch entry point. It discovers files, converts each
// one sequentially, and logs exactly one summary. A discovery failure is
// returned as an error before any file is touched.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, c codec.Codec) (RunStats, error) {
	files, err := Discover(cfg.InputDir, cfg.Extensions)
	if err != nil {
		return newRunStats(cfg.OutputDir, 0), err
	}

	logBatchHeader(cfg, log, len(files))
	stats := ConvertAll(ctx, files, cfg, log, c)
	logSummary(cfg, log, &stats)
	return stats, nil
}

// ConvertAll processes paths one at a time in order. Every file ends in
// exactly one Outcome and every converted, copied, dry-run, or failed file
// produces exactly one notification. Cancelling ctx stops new files from
// starting; the file in progress finishes.
func ConvertAll(ctx context.Context, paths []string, cfg *config.Config, log *logging.Logger, c codec.Codec) RunStats {
	stats := newRunStats(cfg.OutputDir, len(paths))

	root, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		root = cfg.InputDir
	}
	claims := naming.NewClaims()
	exec := codec.NewExecutor(c)
	defer exec.Settle()

	for i, path := range paths {
		if ctx.Err() != nil {
			log.Warn("Interrupted: %d of %d files not started", len(paths)-i, len(paths))
			break
		}
		stats.Current = i + 1

		log.Info("[%d/%d] %s", stats.Current, stats.Total, filepath.Base(path))
		res := processFile(ctx, cfg, log, exec, root, path, claims)
		stats.record(res)
		notify(cfg, log, res)
		log.Blank()
	}
	return stats
}

// processFile handles one image: resolve paths, guard, then copy or
// probe, plan, transcode, write.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	exec *codec.Executor,
	root, source string,
	claims *naming.Claims,
) fileResult {
	start := time.Now()
	res := fileResult{task: FileTask{SourcePath: source}}

	// --- Resolve paths ---
	task, err := NewFileTask(root, cfg.OutputDir, source, cfg.TargetFormat)
	if err != nil {
		return res.fail(StageResolve, err)
	}
	if dest, renamed := claims.Claim(task.SourcePath, task.DestinationPath); renamed {
		log.Warn("  Destination collision: %s already claimed, using %s",
			filepath.Base(task.DestinationPath), filepath.Base(dest))
		task.DestinationPath = dest
	}
	res.task = task

	// --- Create output directory ---
	if !cfg.DryRun {
		if err := os.MkdirAll(filepath.Dir(task.DestinationPath), 0o755); err != nil {
			return res.fail(StageMkdir, err)
		}
	}

	// --- Overwrite guard ---
	if !cfg.Overwrite {
		if _, err := os.Stat(task.DestinationPath); err == nil {
			res.outcome = OutcomeSkippedExisting
			return res
		}
	}

	// --- Dry-run ---
	if cfg.DryRun {
		res.outcome = OutcomeDryRun
		return res
	}

	// --- Skip format: raw copy, never decoded ---
	if cfg.TargetFormat == config.FormatSkip {
		n, err := copyFileAtomic(source, task.DestinationPath)
		if err != nil {
			return res.fail(StageCopy, err)
		}
		res.outcome = OutcomeCopied
		res.inBytes, res.outBytes = n, n
		res.elapsed = time.Since(start)
		return res
	}

	// --- Probe ---
	info, err := probe.Probe(source)
	if err != nil {
		return res.fail(StageProbe, err)
	}
	if cfg.ShowFileStats {
		logFileStats(log, info)
	}
	logSizeOutlier(log, info)

	// --- Build plan ---
	plan := planner.BuildPlan(cfg, info)
	plan.InputPath = source
	plan.OutputPath = task.DestinationPath
	log.Debug(cfg.Verbose, "  Plan: %s", plan.Note)

	// --- Transcode ---
	data, err := os.ReadFile(source)
	if err != nil {
		return res.fail(StageRead, err)
	}

	// A transcode abandoned by an earlier timeout must finish before this
	// file's timeout starts counting.
	exec.Settle()

	// The file in progress survives run cancellation; only the per-file
	// timeout can abandon it.
	fctx := context.WithoutCancel(ctx)
	if cfg.FileTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(fctx, cfg.FileTimeout)
		defer cancel()
	}

	out, err := exec.Execute(fctx, plan, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", cfg.TimeoutLabel(), err)
		}
		return res.fail(StageTranscode, err)
	}
	if out.Flattened {
		log.Debug(cfg.Verbose, "  Flattened transparency onto white")
	}

	// --- Write ---
	if err := writeFileAtomic(task.DestinationPath, out.Data, 0o644); err != nil {
		return res.fail(StageWrite, err)
	}

	res.outcome = OutcomeConverted
	res.inBytes = int64(len(data))
	res.outBytes = int64(len(out.Data))
	res.width, res.height = out.Width, out.Height
	res.elapsed = time.Since(start)
	return res
}

// notify emits the single per-file notification for res.
func notify(cfg *config.Config, log *logging.Logger, res fileResult) {
	dest := res.task.DestinationPath
	switch res.outcome {
	case OutcomeConverted:
		log.Success("Converted %s -> %s (%s, %s -> %s, %s) in %s",
			res.task.RelativePath, dest,
			display.FormatDimensions(res.width, res.height),
			display.FormatBytes(res.inBytes), display.FormatBytes(res.outBytes),
			display.FormatRatio(res.inBytes, res.outBytes),
			res.elapsed.Round(time.Millisecond))
	case OutcomeCopied:
		log.Success("Copied %s -> %s (%s)", res.task.RelativePath, dest, display.FormatBytes(res.outBytes))
	case OutcomeDryRun:
		action := "convert to " + string(cfg.TargetFormat)
		if cfg.TargetFormat == config.FormatSkip {
			action = "copy"
		}
		log.Success("[DRY] Would %s: %s -> %s", action, res.task.RelativePath, dest)
	case OutcomeSkippedExisting:
		log.Warn("Skip (exists): %s", dest)
	case OutcomeFailed:
		log.Error("Failed: %v", res.err)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, total int) {
	log.Info("Found %s images in %s", display.FormatCount(total), cfg.InputDir)

	switch {
	case cfg.TargetFormat == config.FormatSkip:
		log.Info("Target: skip (copy originals unchanged)")
	case cfg.TargetFormat == config.FormatWebP && cfg.Lossless:
		log.Info("Target: webp (lossless)")
	default:
		log.Info("Target: %s, quality %d", cfg.TargetFormat, cfg.Quality)
	}

	if cfg.TargetFormat != config.FormatSkip {
		if cfg.MaxWidth > 0 {
			log.Info("Resize: downscale to max %dpx wide", cfg.MaxWidth)
		} else {
			log.Info("Resize: off")
		}
	}
	if cfg.Overwrite {
		log.Info("Existing outputs: overwrite")
	} else {
		log.Info("Existing outputs: keep (skip)")
	}
	if cfg.FileTimeout > 0 {
		log.Info("Per-file timeout: %s", cfg.TimeoutLabel())
	}
	if cfg.DryRun {
		log.Info("Dry run: nothing will be written")
	}
	log.Blank()
}

func logFileStats(log *logging.Logger, info *probe.ImageInfo) {
	log.Info("  Image: %s | %s | %s", info.Format, info.Resolution(), display.FormatBytes(info.Size))
}

// Bytes-per-pixel above which a source is flagged as unusually heavy.
const heavyBytesPerPixel = 3.0

func logSizeOutlier(log *logging.Logger, info *probe.ImageInfo) {
	if info.Width <= 0 || info.Height <= 0 || info.Size <= 0 {
		return
	}
	bpp := float64(info.Size) / float64(info.Width*info.Height)
	if bpp > heavyBytesPerPixel {
		log.Outlier("  Size outlier (high): %.1f bytes/pixel for %s (%s)",
			bpp, info.Resolution(), display.FormatBytes(info.Size))
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d processed, %d skipped, %d failed", stats.Processed, stats.Skipped, stats.Errors)
	log.Info("Summary report:")
	log.Info("  Output directory: %s", stats.OutputDir)
	log.Info("  Files considered: %d of %d", stats.Current, stats.Total)
	log.Info("  Run ID: %s", stats.RunID)

	if cfg.DryRun {
		log.Info("  Total space saved: n/a (dry run)")
		return
	}
	if stats.TotalInputBytes == 0 {
		return
	}

	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Info("  Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	} else {
		log.Warn("  Total space saved: %s (overall output is larger)",
			display.FormatBytesWithSign(saved))
	}
}
