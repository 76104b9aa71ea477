// Package prompt collects run settings interactively, one question per line,
// with a default shown for every answer.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/backmassage/pixmaster/internal/config"
)

// Defaults offered when the config has no paths yet.
const (
	DefaultInputDir  = "public/assets/images"
	DefaultOutputDir = "public/assets/images-optimized"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	done bool // Input has ended; every further answer is the default.
}

// New returns a Prompter reading from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints query with its default and returns the trimmed answer, or def
// when the answer is blank or input has ended.
func (p *Prompter) Ask(query, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s (default: %s): ", query, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", query)
	}

	var line string
	if !p.done {
		var err error
		line, err = p.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		if err == io.EOF {
			p.done = true
			if line == "" {
				fmt.Fprintln(p.out)
			}
		}
	} else {
		fmt.Fprintln(p.out)
	}
	if answer := strings.TrimSpace(line); answer != "" {
		return answer, nil
	}
	return def, nil
}

// AskBool asks a y/n question. Anything other than y/yes (any case) is no.
func (p *Prompter) AskBool(query string, def bool) (bool, error) {
	d := "n"
	if def {
		d = "y"
	}
	a, err := p.Ask(query+" (y/n)", d)
	if err != nil {
		return false, err
	}
	a = strings.ToLower(a)
	return a == "y" || a == "yes", nil
}

// Collect asks for every conversion setting in turn, starting from the
// values already in cfg, and writes the answers back. Invalid numeric or
// format answers are re-asked.
func Collect(p *Prompter, cfg *config.Config) error {
	var err error

	inDef := cfg.InputDir
	if inDef == "" {
		inDef = DefaultInputDir
	}
	in, err := p.Ask("INPUT directory", inDef)
	if err != nil {
		return err
	}
	cfg.InputDir = config.NormalizeDirArg(in)

	outDef := cfg.OutputDir
	if outDef == "" {
		outDef = DefaultOutputDir
	}
	out, err := p.Ask("OUTPUT directory", outDef)
	if err != nil {
		return err
	}
	cfg.OutputDir = config.NormalizeDirArg(out)

	exts, err := p.Ask("SOURCE file extensions (comma-separated)", strings.Join(cfg.Extensions, ","))
	if err != nil {
		return err
	}
	cfg.Extensions = config.SplitList(exts)

	for {
		a, err := p.Ask("TARGET format (webp, avif, jpg, jpeg, png, skip)", string(cfg.TargetFormat))
		if err != nil {
			return err
		}
		f, perr := config.ParseFormat(a)
		if perr == nil {
			cfg.TargetFormat = f
			break
		}
		if p.done {
			return perr
		}
		fmt.Fprintln(p.out, perr)
	}

	if cfg.TargetFormat == config.FormatSkip {
		return askOverwrite(p, cfg)
	}

	if cfg.TargetFormat == config.FormatWebP {
		if cfg.Lossless, err = p.AskBool("Use lossless WebP?", cfg.Lossless); err != nil {
			return err
		}
	}

	for {
		a, err := p.Ask(fmt.Sprintf("%s quality (0-100)", strings.ToUpper(string(cfg.TargetFormat))), strconv.Itoa(cfg.Quality))
		if err != nil {
			return err
		}
		q, perr := config.ParseQuality(a)
		if perr == nil {
			cfg.Quality = q
			break
		}
		if p.done {
			return perr
		}
		fmt.Fprintln(p.out, perr)
	}

	for {
		def := strconv.Itoa(cfg.MaxWidth)
		if cfg.MaxWidth <= 0 {
			def = "none"
		}
		a, err := p.Ask("MAX width to resize (px), 0 or none to skip", def)
		if err != nil {
			return err
		}
		w, perr := config.ParseMaxWidth(a)
		if perr == nil {
			cfg.MaxWidth = w
			break
		}
		if p.done {
			return perr
		}
		fmt.Fprintln(p.out, perr)
	}

	return askOverwrite(p, cfg)
}

func askOverwrite(p *Prompter, cfg *config.Config) error {
	ow, err := p.AskBool("Overwrite existing files in output?", cfg.Overwrite)
	if err != nil {
		return err
	}
	cfg.Overwrite = ow
	return nil
}
