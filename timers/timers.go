// Package timers provides a self-time profiling tree for instrumenting the
// nested phases of an SPMD (MPI style) application.
//
// Elapsed time is attributed to a closed set of partitions (see [Partition]).
// Partitions are entered and left in LIFO order on a [TimersTree]; while a
// nested partition is active its parent does not accrue time, so each bucket
// holds the exclusive (self) time of its partition summed over every entrance.
// An example timeline:
//
//	 uncategorized ─┬──────────────────────────────┬─ uncategorized
//	                └ optimizer ┬─────────┬ optimizer
//	                            └ filter ─┘
//
// Every process owns its own tree. Only rank 0 emits a report, as a table
// (or YAML) listing label, seconds, percentage and entrances per partition.
package timers

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"
)

func init() {
	output = os.Stdout

	logLevel = new(slog.LevelVar)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(h)
}

var (
	output   io.Writer
	logger   *slog.Logger
	logLevel *slog.LevelVar
)

// SetLogger set the logger used by timers.
// [SetLogLevel] will not be enforced if a custom logger is used.
func SetLogger(newlogger *slog.Logger) {
	logger = newlogger
}

// SetLogLevel sets the level for timers messages unless [SetLogger] has been called.
// The default log level is the zero value of [slog.LevelVar].
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// SetOutput sets the writer reports are printed to by trees that were not
// given one with [WithOutput]. The default is [os.Stdout].
func SetOutput(w io.Writer) {
	if w == nil {
		logger.Error("invalid report output, keeping previous one")
		return
	}
	output = w
}

// SetColor enables or disables colored report titles and headers.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}
