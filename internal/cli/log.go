package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the command logger: leveled, prefixed with the app name
// and stamped with "HH:MM:SS.ms" times.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// stage times one step of a command, such as loading, computing or
// rendering a graph.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func startStage(l *log.Logger, name string) *stage {
	l.Debug("stage started", "stage", name)
	return &stage{logger: l, name: name, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time.
//
//	Computed graph nodes=3 edges=2 elapsed=2ms
func (s *stage) done(msg string, keyvals ...any) {
	s.logger.Info(msg, append(keyvals, "elapsed", s.elapsed())...)
}

// failed logs err at debug level. The error itself is returned to the user.
func (s *stage) failed(err error) {
	s.logger.Debug("stage failed", "stage", s.name, "elapsed", s.elapsed(), "err", err)
}

func (s *stage) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
