package label

import (
	"log/slog"

	"github.com/gogpu/label/internal/logging"
)

// SetLogger configures the logger for label and all its sub-packages.
// By default, label produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used by label:
//   - [slog.LevelDebug]: planning decisions, raster sizes
//   - [slog.LevelInfo]: composed labels, sink deliveries
//   - [slog.LevelWarn]: fallbacks taken by the command-line tool
//
// Example:
//
//	label.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by label.
func Logger() *slog.Logger {
	return logging.L()
}
