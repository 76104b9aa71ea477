// Package config holds runtime configuration: defaults, CLI flag parsing,
// YAML/env layering, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrConfig is wrapped by every validation failure so callers can tell a
// configuration problem (fatal, before any file is touched) apart from
// per-file processing errors.
var ErrConfig = errors.New("configuration error")

// --- Enum types for validated string fields ---

// Format is the target output format.
type Format string

const (
	FormatWebP Format = "webp" // WebP (default).
	FormatAVIF Format = "avif" // AVIF.
	FormatJPG  Format = "jpg"  // JPEG, written with a .jpg extension.
	FormatJPEG Format = "jpeg" // JPEG, written with a .jpeg extension.
	FormatPNG  Format = "png"  // PNG (quality is accepted but has no effect).
	FormatSkip Format = "skip" // Byte-for-byte copy; original extension kept.
)

// Formats lists every accepted target format in help-text order.
var Formats = []Format{FormatWebP, FormatAVIF, FormatJPG, FormatJPEG, FormatPNG, FormatSkip}

// ParseFormat maps user input (any case, surrounding space) onto a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.Valid() {
		return f, nil
	}
	return "", fmt.Errorf("%w: invalid target format %q (use webp, avif, jpg, jpeg, png or skip)", ErrConfig, s)
}

// Valid reports whether f is one of the closed set of target formats.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// IsJPEG reports whether f selects the JPEG encoder under either spelling.
func (f Format) IsJPEG() bool { return f == FormatJPG || f == FormatJPEG }

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Quality bounds for lossy encoders.
const (
	QualityMin = 0
	QualityMax = 100
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// layered by [LoadFile], [ApplyEnv] and [ParseFlags], and frozen by
// [Config.Validate] before being passed (by pointer) to the pipeline, which
// never mutates it.
type Config struct {
	// Paths (set from positional args, config file, or prompts).
	InputDir  string
	OutputDir string

	// Discovery.
	Extensions []string // Lowercase, no leading dot. Default: png,jpg,jpeg,webp,avif,gif.

	// Encoding.
	TargetFormat Format // Default: "webp".
	Lossless     bool   // WebP only.
	Quality      int    // Default: 80. Clamped to [0,100] by Validate.
	MaxWidth     int    // Default: 1920. 0 disables resizing.

	// Behavior flags.
	Overwrite   bool          // Default: true. Cleared by --no-overwrite.
	DryRun      bool          // Plan and log only.
	StrictMode  bool          // Exit non-zero when any file failed.
	FileTimeout time.Duration // 0 = no per-file timeout.

	// Display and logging.
	Verbose       bool
	ShowFileStats bool      // Default: true.
	ColorMode     ColorMode // Default: "auto".
	LogFile       string    // Optional log file path.

	// Modes.
	CheckOnly   bool // Run --check diagnostics and exit.
	AnalyzeOnly bool // Print the discovered-image table and exit.
	Interactive bool // Ask for settings on the terminal.

	// Config sources (consumed during flag parsing).
	ConfigFile string
	EnvFile    string
}

// DefaultExtensions is the allow-set used when none is configured.
var DefaultExtensions = []string{"png", "jpg", "jpeg", "webp", "avif", "gif"}

// DefaultConfig returns the base Config that files, env and flags are
// applied on top of.
func DefaultConfig() Config {
	return Config{
		Extensions:    append([]string(nil), DefaultExtensions...),
		TargetFormat:  FormatWebP,
		Lossless:      false,
		Quality:       80,
		MaxWidth:      1920,
		Overwrite:     true,
		ShowFileStats: true,
		ColorMode:     ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtensions lowercases, trims, strips a leading dot, and drops
// empty and duplicate entries while keeping first-seen order.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), ".")
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// SplitList splits a comma-separated list such as "png, JPG,.webp".
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Validate checks enum fields and normalizes numeric and list fields. When
// not in CheckOnly mode it also requires the input path, and the output path
// unless AnalyzeOnly is set. Every returned error wraps [ErrConfig].
func (c *Config) Validate() error {
	f, err := ParseFormat(string(c.TargetFormat))
	if err != nil {
		return err
	}
	c.TargetFormat = f

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("%w: invalid color mode %q (use 'auto', 'always' or 'never')", ErrConfig, c.ColorMode)
	}

	c.Quality = Clamp(c.Quality, QualityMin, QualityMax)
	if c.MaxWidth < 0 {
		c.MaxWidth = 0
	}
	if c.FileTimeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative (got %s)", ErrConfig, c.FileTimeout)
	}

	c.Extensions = NormalizeExtensions(c.Extensions)
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: at least one source extension is required", ErrConfig)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return fmt.Errorf("%w: need input_dir", ErrConfig)
	}
	if c.OutputDir == "" && !c.AnalyzeOnly {
		return fmt.Errorf("%w: need output_dir", ErrConfig)
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory, so a later run never rediscovers its own
// output. Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return fmt.Errorf("%w: output directory must not be inside input directory", ErrConfig)
	}
	return nil
}
