package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/pixmaster/internal/config"
	"github.com/backmassage/pixmaster/internal/display"
	"github.com/backmassage/pixmaster/internal/logging"
	"github.com/backmassage/pixmaster/internal/probe"
	"github.com/backmassage/pixmaster/internal/term"
)

// analysisRow is one probed image in the --analyze report.
type analysisRow struct {
	rel   string
	info  *probe.ImageInfo
	wide  bool // displayed width exceeds the configured max width
	class sizeClass
}

// bytesPerPixel is the stored size divided by pixel count, or 0 if unknown.
func (r analysisRow) bytesPerPixel() float64 {
	px := r.info.Width * r.info.Height
	if px <= 0 {
		return 0
	}
	return float64(r.info.Size) / float64(px)
}

// Analyze probes every discovered image header and prints a table of format,
// dimensions, size and bytes per pixel, flagging size outliers and images
// that a conversion would downscale. It never writes to disk.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	files, err := Discover(cfg.InputDir, cfg.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("No images found in %s", cfg.InputDir)
		return nil
	}
	root, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		root = cfg.InputDir
	}
	log.Info("Analyzing %s images in %s", display.FormatCount(len(files)), cfg.InputDir)
	log.Blank()

	prog := newProgress(os.Stdout, term.IsTerminal(os.Stdout), len(files))
	var rows []analysisRow
	for _, path := range files {
		if ctx.Err() != nil {
			prog.clear()
			log.Warn("Interrupted, report covers %d of %d images", len(rows), len(files))
			break
		}
		prog.step(filepath.Base(path))

		info, err := probe.Probe(path)
		if err != nil {
			prog.clear()
			log.Warn("Unreadable header, left out: %s", filepath.Base(path))
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		w, _ := info.DisplaySize()
		rows = append(rows, analysisRow{
			rel:  rel,
			info: info,
			wide: cfg.MaxWidth > 0 && w > cfg.MaxWidth,
		})
	}
	prog.clear()

	if len(rows) == 0 {
		log.Warn("No image headers could be read")
		return nil
	}

	sizes := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.info.Size > 0 {
			sizes = append(sizes, float64(r.info.Size))
		}
	}
	f := newFences(sizes)
	for i := range rows {
		rows[i].class = f.classify(float64(rows[i].info.Size))
	}

	writeAnalysisTable(os.Stdout, rows)
	summarizeAnalysis(log, cfg, rows, f)
	return nil
}

const maxNameColumn = 50

func writeAnalysisTable(w io.Writer, rows []analysisRow) {
	cols := []string{"File", "Format", "Dimensions", "Size", "B/px"}
	cells := make([][]string, len(rows))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for i, r := range rows {
		bpp := "?"
		if v := r.bytesPerPixel(); v > 0 {
			bpp = fmt.Sprintf("%.2f", v)
		}
		cells[i] = []string{
			truncate(r.rel, maxNameColumn),
			r.info.Format,
			display.FormatDimensions(r.info.DisplaySize()),
			display.FormatBytes(r.info.Size),
			bpp,
		}
		for j, c := range cells[i] {
			widths[j] = max(widths[j], len([]rune(c)))
		}
	}

	writeRow(w, cols, widths)
	total := len(widths) * 2
	for _, n := range widths {
		total += n
	}
	fmt.Fprintln(w, "  "+strings.Repeat("─", total-2))

	for i, r := range rows {
		line := padCells(cells[i], widths)
		line[3] = term.Paint(classStyle(r.class), line[3])
		flags := classFlag(r.class)
		if r.wide {
			flags += term.Paint(term.Caution, "[>]")
		}
		fmt.Fprintf(w, "  %s  %s\n", strings.Join(line, "  "), flags)
	}
	fmt.Fprintln(w)
}

func writeRow(w io.Writer, cells []string, widths []int) {
	fmt.Fprintf(w, "  %s\n", strings.Join(padCells(cells, widths), "  "))
}

// padCells pads before coloring so escape sequences do not skew alignment.
func padCells(cells []string, widths []int) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c + strings.Repeat(" ", widths[i]-len([]rune(c)))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func classStyle(c sizeClass) term.Style {
	switch c {
	case sizeExtreme:
		return term.Bad
	case sizeOutlier:
		return term.Notice
	}
	return term.Plain
}

func classFlag(c sizeClass) string {
	switch c {
	case sizeExtreme:
		return term.Paint(term.Bad, "[!]")
	case sizeOutlier:
		return term.Paint(term.Notice, "[*]")
	}
	return ""
}

func summarizeAnalysis(log *logging.Logger, cfg *config.Config, rows []analysisRow, f fences) {
	var total int64
	var outliers, extremes, wide int
	for _, r := range rows {
		total += r.info.Size
		switch r.class {
		case sizeOutlier:
			outliers++
		case sizeExtreme:
			extremes++
		}
		if r.wide {
			wide++
		}
	}

	log.Info("%d images, %s total", len(rows), display.FormatBytes(total))
	if f.ok {
		lo, hi := f.inner()
		log.Info("  Typical size (Q1-Q3): %s to %s, outside %s to %s is flagged",
			display.FormatBytes(int64(f.q1)), display.FormatBytes(int64(f.q3)),
			display.FormatBytes(int64(lo)), display.FormatBytes(int64(hi)))
	}
	if wide > 0 {
		log.Warn("  %d image(s) wider than %dpx would be downscaled [>]", wide, cfg.MaxWidth)
	}
	if outliers > 0 {
		log.Outlier("  %d size outlier(s) [*]", outliers)
	}
	if extremes > 0 {
		log.Outlier("  %d extreme size outlier(s) [!]", extremes)
	}
	if outliers+extremes == 0 {
		log.Success("  No size outliers")
	}
}

// progress keeps a single self-overwriting status line on a terminal.
type progress struct {
	w     io.Writer
	tty   bool
	total int
	n     int
}

const progressWidth = 80

func newProgress(w io.Writer, tty bool, total int) *progress {
	return &progress{w: w, tty: tty, total: total}
}

func (p *progress) step(name string) {
	p.n++
	if !p.tty {
		return
	}
	line := fmt.Sprintf("  Probing %d/%d %s", p.n, p.total, truncate(name, 40))
	fmt.Fprintf(p.w, "\r%-*s", progressWidth, line)
}

func (p *progress) clear() {
	if p.tty {
		fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", progressWidth))
	}
}
