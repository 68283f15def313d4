package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// thin wrapper over zap's sugared logger used by the CLI
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger on stderr, debug level when verbose.
func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return newLogger(zap.NewAtomicLevelAt(level))
}

// NewLoggerWithLevel builds a logger for a named level (debug, info, warn, error).
func NewLoggerWithLevel(name string) (*Logger, error) {
	level, err := ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return newLogger(zap.NewAtomicLevelAt(level)), nil
}

func ParseLevel(name string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func newLogger(level zap.AtomicLevel) *Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return &Logger{zap.New(core).Sugar()}
}
