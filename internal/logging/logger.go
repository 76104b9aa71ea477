// Package logging is the console logger used by every stage of a run: one
// timestamped "[LEVEL] text" line per event, colored on a terminal, and
// mirrored in plain text to an optional append-mode log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/backmassage/pixmaster/internal/config"
	"github.com/backmassage/pixmaster/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

type level struct {
	tag    string
	style  term.Style
	stderr bool
}

var (
	levelInfo    = level{"INFO", term.Info, false}
	levelSuccess = level{"SUCCESS", term.Good, false}
	levelWarn    = level{"WARN", term.Caution, false}
	levelError   = level{"ERROR", term.Bad, true}
	levelOutlier = level{"OUTLIER", term.Notice, false}
	levelDebug   = level{"DEBUG", term.Detail, false}
)

// Logger writes leveled lines to the console and, when configured, a file.
// It is safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	file   io.WriteCloser
	now    func() time.Time
}

// NewLogger applies cfg.ColorMode and opens cfg.LogFile for appending when
// set, creating its directory. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{stdout: os.Stdout, stderr: os.Stderr, now: time.Now}
	if cfg.LogFile == "" {
		return l, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return l, nil
}

// SetOutput redirects console output, mainly for tests.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout, l.stderr = stdout, stderr
}

// Close closes the log file, if any. It is safe to call more than once.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) emit(lv level, format string, args []any) {
	text := fmt.Sprintf(format, args...)
	ts := l.now().Format(timeLayout)
	tag := "[" + lv.tag + "]"

	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.stdout
	if lv.stderr {
		out = l.stderr
	}
	fmt.Fprintf(out, "%s %s %s\n", ts, term.Paint(lv.style, tag), text)
	if l.file != nil {
		fmt.Fprintf(l.file, "%s %s %s\n", ts, tag, text)
	}
}

// Blank writes an empty separator line to the console only.
func (l *Logger) Blank() {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.stdout, "\n")
}

// Info logs routine progress.
func (l *Logger) Info(format string, args ...any) { l.emit(levelInfo, format, args) }

// Success logs a file that was converted or copied.
func (l *Logger) Success(format string, args ...any) { l.emit(levelSuccess, format, args) }

// Warn logs something skipped or suspicious that is not a failure.
func (l *Logger) Warn(format string, args ...any) { l.emit(levelWarn, format, args) }

// Error logs a failure. It goes to stderr.
func (l *Logger) Error(format string, args ...any) { l.emit(levelError, format, args) }

// Outlier flags an image whose size stands out from the rest.
func (l *Logger) Outlier(format string, args ...any) { l.emit(levelOutlier, format, args) }

// Debug logs only when verbose is set.
func (l *Logger) Debug(verbose bool, format string, args ...any) {
	if verbose {
		l.emit(levelDebug, format, args)
	}
}
