package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/decred/slog"
	"github.com/fatih/color"
)

// loggerMaker hands out subsystem loggers that share one backend and level.
type loggerMaker struct {
	*slog.Backend
	level slog.Level
}

func newLoggerMaker(w io.Writer, level string) (*loggerMaker, error) {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return &loggerMaker{Backend: slog.NewBackend(w), level: lvl}, nil
}

func (lm *loggerMaker) NewLogger(name string) slog.Logger {
	if lm == nil {
		return slog.Disabled
	}
	logger := lm.Backend.Logger(name)
	logger.SetLevel(lm.level)
	return logger
}

var logs *loggerMaker

func setupLogging(level string) error {
	lm, err := newLoggerMaker(os.Stderr, level)
	if err != nil {
		return err
	}
	logs = lm
	return nil
}

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("⚠")
)
