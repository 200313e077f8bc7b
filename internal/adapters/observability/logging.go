package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger on stdout at the given level.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string, level zerolog.Level) zerolog.Logger {
	return newLogger(os.Stdout, env, level)
}

func newLogger(out io.Writer, env string, level zerolog.Level) zerolog.Logger {
	switch env {
	case "dev", "development":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
