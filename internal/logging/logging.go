// Package logging builds the client's logger. The terminal belongs to the UI,
// so records go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const Prefix = "momentum"

type Options struct {
	Path  string
	Level string
}

// New opens (appending) the log file and returns a logger writing to it with
// a closer for the file. An empty path discards all records.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(opts.Path) == "" {
		return newLogger(io.Discard, level), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), f, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(v string) (log.Level, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(v)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", v, err)
	}
	return level, nil
}
