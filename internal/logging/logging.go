// Package logging builds the zap loggers used across slots.
package logging

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and encoding of a logger.
type Config struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level"`
	// JSON selects structured JSON output over console output.
	JSON bool `mapstructure:"json"`
}

// New builds a logger writing to stderr.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	var encoder zapcore.Encoder
	if cfg.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	return zap.New(core), nil
}

// ParseLevel parses a level name; the empty name is info.
func ParseLevel(name string) (level zapcore.Level, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		level = zapcore.InfoLevel
		return
	}
	if err = level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		err = errors.WithHint(errors.Wrapf(err, "log level %q", name), "use debug, info, warn or error")
	}
	return
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
