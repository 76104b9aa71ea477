// Command pixmaster is the CLI entrypoint for the Pixmaster batch image
// optimizer.
//
// It gathers configuration (flags, YAML preset, env, optional prompts),
// validates it and the paths, and then runs system diagnostics (--check),
// the read-only report (--analyze), or the conversion pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/pixmaster/internal/check"
	"github.com/backmassage/pixmaster/internal/codec"
	"github.com/backmassage/pixmaster/internal/config"
	"github.com/backmassage/pixmaster/internal/display"
	"github.com/backmassage/pixmaster/internal/logging"
	"github.com/backmassage/pixmaster/internal/pipeline"
	"github.com/backmassage/pixmaster/internal/prompt"
	"github.com/backmassage/pixmaster/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK     = 0
	exitConfig = 1 // Configuration or bootstrap failure; nothing was processed.
	exitStrict = 2 // --strict and at least one file failed.
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		if errors.Is(err, config.ErrHelpShown) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "pixmaster: %v\n", err)
		return exitConfig
	}

	// Prompt when asked to, or when no paths were given on an interactive terminal.
	needPaths := cfg.InputDir == "" && cfg.OutputDir == "" && !cfg.CheckOnly
	if cfg.Interactive || (needPaths && term.IsTerminal(os.Stdin)) {
		fmt.Fprintln(os.Stdout, "--- Pixmaster Image Optimizer ---")
		if err := prompt.Collect(prompt.New(os.Stdin, os.Stdout), &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "pixmaster: %v\n", err)
			return exitConfig
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "pixmaster: %v\n", err)
		return exitConfig
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pixmaster: %v\n", err)
		return exitConfig
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()
	c := codec.New()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log, c) {
			return exitConfig
		}
		return exitOK
	}

	// Phase 3: Signal handling. Cancel on SIGINT/SIGTERM so the pipeline
	// stops between files without leaving partial output.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return exitConfig
	}

	if cfg.AnalyzeOnly {
		if err := pipeline.Analyze(ctx, &cfg, log); err != nil {
			log.Error("%v", err)
			return exitConfig
		}
		return exitOK
	}

	// Resolve and validate paths before anything is created: output must not
	// be inside input, so a later run never rediscovers its own output and a
	// rejected run leaves the input tree untouched.
	outputAbs, err := absPathLenient(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return exitConfig
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.InputDir)
		return exitConfig
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.OutputDir)
			return exitConfig
		}
	}

	log.Info("=== Pixmaster v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Blank()

	// Fail fast if the target encoder is unusable.
	if err := check.CheckDeps(&cfg, c); err != nil {
		log.Error("%v", err)
		return exitConfig
	}

	// Phase 4: Run pipeline (discover → convert → summary).
	stats, err := pipeline.Run(ctx, &cfg, log, c)
	if err != nil {
		log.Error("%v", err)
		return exitConfig
	}

	if cfg.StrictMode && stats.Errors > 0 {
		return exitStrict
	}
	return exitOK
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// absPathLenient is absPath for a path that may not exist yet: the deepest
// existing ancestor is resolved and the missing tail appended.
func absPathLenient(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var tail []string
	for cur := abs; ; {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", err
		}
		tail = append(tail, filepath.Base(cur))
		cur = parent
	}
}
