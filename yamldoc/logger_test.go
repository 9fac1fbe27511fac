package yamldoc_test

import (
	"io"
	"log/slog"

	"go.jacobcolvin.com/yamlconf/log"
)

func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(log.NewHandler(w, log.LevelDebug, log.FormatLogfmt))
}
