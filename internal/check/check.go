// Package check provides system diagnostics (--check mode) and pre-pipeline
// encoder validation (CheckDeps) for every supported output format.
package check

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"runtime"

	"github.com/backmassage/pixmaster/internal/codec"
	"github.com/backmassage/pixmaster/internal/config"
)

// ErrEncoderUnavailable is returned by CheckDeps when a test encode in the
// target format fails.
var ErrEncoderUnavailable = errors.New("encoder unavailable")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the --check flow: a round-trip encode/decode for each output
// format, then a look at the configured directories. It reports every
// result and returns false when any encoder failed.
func RunCheck(cfg *config.Config, log Logger, c codec.Codec) bool {
	log.Info("=== System Check ===")
	log.Info("Go runtime: %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	ok := true
	for _, f := range config.Formats {
		if f == config.FormatSkip || f == config.FormatJPEG {
			continue
		}
		if err := roundTrip(c, f); err != nil {
			log.Error("%s encoder: %v", f, err)
			ok = false
			continue
		}
		log.Success("%s encoder works", f)
	}

	checkDir(log, "Input", cfg.InputDir, false)
	checkDir(log, "Output", cfg.OutputDir, true)
	return ok
}

// checkDir reports whether dir exists; a missing output directory is fine
// because the run creates it.
func checkDir(log Logger, label, dir string, creatable bool) {
	if dir == "" {
		return
	}
	st, err := os.Stat(dir)
	switch {
	case err == nil && st.IsDir():
		log.Success("%s directory: %s", label, dir)
	case err == nil:
		log.Error("%s path is not a directory: %s", label, dir)
	case os.IsNotExist(err) && creatable:
		log.Info("%s directory will be created: %s", label, dir)
	default:
		log.Warn("%s directory: %v", label, err)
	}
}

// CheckDeps is the pre-pipeline validation: it runs a tiny test encode in
// the configured target format. The skip format needs no encoder.
func CheckDeps(cfg *config.Config, c codec.Codec) error {
	if cfg.TargetFormat == config.FormatSkip {
		return nil
	}
	if err := roundTrip(c, cfg.TargetFormat); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncoderUnavailable, cfg.TargetFormat, err)
	}
	return nil
}

// roundTrip encodes a small test pattern in format and decodes it back.
func roundTrip(c codec.Codec, format config.Format) error {
	src := testPattern(8, 8)

	var buf bytes.Buffer
	if err := c.Encode(&buf, src, format, codec.Options{Quality: 75}); err != nil {
		return err
	}
	img, err := c.Decode(&buf)
	if err != nil {
		return err
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		return fmt.Errorf("round trip returned %dx%d, want 8x8", b.Dx(), b.Dy())
	}
	return nil
}

func testPattern(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 32), G: uint8(y * 32), B: 96, A: 255})
		}
	}
	return img
}
