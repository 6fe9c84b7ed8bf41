// Package logging builds the process logger: the log/slog API on top of a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// New returns a slog.Logger writing to w (os.Stderr when nil). Production
// output is JSON; anything else is human readable text.
func New(w io.Writer, level string, production bool) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := charmlog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	formatter := charmlog.TextFormatter
	if production {
		formatter = charmlog.JSONFormatter
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       formatter,
	})

	return slog.New(handler), nil
}
