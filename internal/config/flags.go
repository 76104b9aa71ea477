package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into encoding, discovery, behavior, display, and utility.
// Negated flags (e.g. --no-overwrite) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrHelpShown is returned by ParseFlags after --help or --version output,
// so the caller can exit successfully without running anything.
var ErrHelpShown = errors.New("help shown")

// ParseFlags parses args (without the program name) into cfg.
//
// Sources are layered: whatever cfg already holds, then --config (YAML),
// then --env-file and PIXMASTER_* variables, then the flags themselves. A
// first silent pass finds --config and --env-file; the second pass re-applies
// every flag so the command line always wins.
func ParseFlags(cfg *Config, args []string, version string) error {
	// Parse errors surface from the real pass below, with usage.
	scout := *cfg
	if _, _, err := parse(&scout, args, version, io.Discard); err == nil {
		if err := applySources(cfg, scout.ConfigFile, scout.EnvFile); err != nil {
			return err
		}
	}

	fs, n, err := parse(cfg, args, version, os.Stderr)
	if err != nil {
		return err
	}

	if n.showHelp {
		printUsage(os.Stderr, version)
		return ErrHelpShown
	}
	if n.showVersion {
		fmt.Fprintln(os.Stdout, "pixmaster v"+version)
		return ErrHelpShown
	}

	return parsePositionalArgs(fs, cfg)
}

// applySources layers the YAML preset, then the env file and process
// environment, onto cfg.
func applySources(cfg *Config, configFile, envFile string) error {
	if configFile != "" {
		if err := LoadFile(cfg, configFile); err != nil {
			return err
		}
	}
	if envFile != "" {
		if err := LoadEnvFile(envFile); err != nil {
			return err
		}
	}
	return ApplyEnv(cfg)
}

// parse registers all flags against cfg and parses args. It returns the flag
// set (for positional args) and the post-parse flags that were captured.
func parse(cfg *Config, args []string, version string, usageOut io.Writer) (*flag.FlagSet, *negatedFlags, error) {
	fs := flag.NewFlagSet("pixmaster", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printUsage(usageOut, version) }

	n := &negatedFlags{}
	defineEncodingFlags(fs, cfg, n)
	defineDiscoveryFlags(fs, cfg, n)
	defineBehaviorFlags(fs, cfg, n)
	defineDisplayFlags(fs, cfg, n)
	defineUtilityFlags(fs, cfg, n)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := applyNegatedFlags(cfg, n); err != nil {
		return nil, nil, err
	}
	return fs, n, nil
}

// negatedFlags holds flags that are applied after Parse. These either invert
// a default (e.g. noOverwrite -> Overwrite=false), need parsing into a typed
// field (extensions, quality, max width), or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noOverwrite bool
	noStats     bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool

	extensions string
	quality    string
	maxWidth   string
}

// defineEncodingFlags registers -f/--format, -q/--quality, --lossless, -w/--max-width.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Var(&formatValue{&cfg.TargetFormat}, "format", "Target format: webp | avif | jpg | jpeg | png | skip")
	fs.Var(&formatValue{&cfg.TargetFormat}, "f", "Same as --format")
	fs.StringVar(&n.quality, "quality", "", "Encoder quality 0-100")
	fs.StringVar(&n.quality, "q", "", "Same as --quality")
	fs.BoolVar(&cfg.Lossless, "lossless", cfg.Lossless, "Lossless WebP")
	fs.StringVar(&n.maxWidth, "max-width", "", "Downscale images wider than this (0 = never resize)")
	fs.StringVar(&n.maxWidth, "w", "", "Same as --max-width")
}

// defineDiscoveryFlags registers -e/--ext.
func defineDiscoveryFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&n.extensions, "ext", "", "Source extensions, comma-separated")
	fs.StringVar(&n.extensions, "e", "", "Same as --ext")
}

// defineBehaviorFlags registers overwrite, dry-run, strict, timeout, and the mode switches.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "Overwrite existing output files (default: on)")
	fs.BoolVar(&n.noOverwrite, "no-overwrite", false, "Keep existing output files")
	fs.BoolVar(&n.noOverwrite, "k", false, "Same as --no-overwrite")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Preview only; do not write files")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.BoolVar(&cfg.StrictMode, "strict", cfg.StrictMode, "Exit non-zero when any file fails")
	fs.DurationVar(&cfg.FileTimeout, "timeout", cfg.FileTimeout, "Per-file timeout (e.g. 30s); 0 disables")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Ask for settings on the terminal")
	fs.BoolVar(&cfg.Interactive, "i", cfg.Interactive, "Same as --interactive")
	fs.BoolVar(&cfg.AnalyzeOnly, "analyze", cfg.AnalyzeOnly, "Print a table of discovered images and exit")
	fs.BoolVar(&cfg.AnalyzeOnly, "a", cfg.AnalyzeOnly, "Same as --analyze")
}

// defineDisplayFlags registers --color, --no-color, verbose, --no-stats, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&n.noStats, "no-stats", false, "Hide per-file image stats")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --check, --config, --env-file, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "Run codec diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", cfg.CheckOnly, "Same as --check")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML preset file")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "Load PIXMASTER_* variables from file")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and typed flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) error {
	if n.noOverwrite {
		cfg.Overwrite = false
	}
	if n.noStats {
		cfg.ShowFileStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if n.extensions != "" {
		cfg.Extensions = SplitList(n.extensions)
	}
	if n.quality != "" {
		q, err := parseInt(n.quality, "quality")
		if err != nil {
			return err
		}
		cfg.Quality = q
	}
	if n.maxWidth != "" {
		w, err := parseMaxWidth(n.maxWidth)
		if err != nil {
			return err
		}
		cfg.MaxWidth = w
	}
	return nil
}

// parsePositionalArgs sets InputDir and OutputDir from the two positional
// args. Zero args is allowed (paths may come from a config file, the
// environment, or prompts); Validate enforces that both end up set.
// --analyze also accepts the input directory alone.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		if !cfg.AnalyzeOnly {
			return fmt.Errorf("%w: need exactly input_dir and output_dir", ErrConfig)
		}
		cfg.InputDir = NormalizeDirArg(args[0])
		return nil
	case 2:
		cfg.InputDir = NormalizeDirArg(args[0])
		cfg.OutputDir = NormalizeDirArg(args[1])
		return nil
	default:
		return fmt.Errorf("%w: need exactly input_dir and output_dir", ErrConfig)
	}
}

// parseInt parses a string as an integer for numeric flags; returns a clear error on failure.
func parseInt(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number (got %q)", ErrConfig, name, s)
	}
	return n, nil
}

// parseMaxWidth accepts a pixel count, or "none"/"off" to disable resizing.
func parseMaxWidth(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off", "no":
		return 0, nil
	}
	return parseInt(s, "max width")
}

// ParseMaxWidth is the exported form used by interactive prompts.
func ParseMaxWidth(s string) (int, error) { return parseMaxWidth(s) }

// ParseQuality parses and clamps a quality answer.
func ParseQuality(s string) (int, error) {
	q, err := parseInt(s, "quality")
	if err != nil {
		return 0, err
	}
	return Clamp(q, QualityMin, QualityMax), nil
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Pixmaster v" + version + " - batch image optimizer"},
		{"", ""},
		{"  pixmaster [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"Encoding", ""},
		{"  -f, --format <fmt>", "webp | avif | jpg | jpeg | png | skip (default: webp)"},
		{"  -q, --quality <0-100>", "Encoder quality (default: 80)"},
		{"  --lossless", "Lossless WebP"},
		{"  -w, --max-width <px>", "Downscale wider images (default: 1920, 0 = off)"},
		{"", ""},
		{"Discovery", ""},
		{"  -e, --ext <list>", "Source extensions (default: png,jpg,jpeg,webp,avif,gif)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  --overwrite", "Overwrite existing output files (default: on)"},
		{"  -k, --no-overwrite", "Keep existing output files"},
		{"  -d, --dry-run", "Preview only; do not write files"},
		{"  --strict", "Exit non-zero when any file fails"},
		{"  --timeout <dur>", "Per-file timeout (e.g. 30s)"},
		{"  -i, --interactive", "Ask for settings on the terminal"},
		{"  -a, --analyze", "Print a table of discovered images and exit"},
		{"", ""},
		{"Display", ""},
		{"  --no-stats", "Hide per-file image stats"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML preset file"},
		{"  --env-file <path>", "Load PIXMASTER_* variables from file"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Codec diagnostics (decode/encode per format)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (Format) with flag.Var.

type formatValue struct{ p *Format }

func (f *formatValue) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}

func (f *formatValue) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

// durationString renders d for help and log output.
func durationString(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}

// TimeoutLabel returns the per-file timeout for display.
func (c *Config) TimeoutLabel() string { return durationString(c.FileTimeout) }
