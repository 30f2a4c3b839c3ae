// Package logging configures the zap loggers used by the command line tools.
package logging

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Level converts a textual level to zap level. Unknown levels fall back to INFO.
func Level(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zap.DebugLevel
	case "INFO":
		return zap.InfoLevel
	case "ERROR":
		return zap.ErrorLevel
	case "WARN":
		return zap.WarnLevel
	case "FATAL":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

// SetupLogger builds a console logger writing to w and installs it as the global zap logger.
// A non-empty filter is a set of zapfilter rules, for example "debug+:proto.* info+:*".
func SetupLogger(w io.Writer, level, filter string) (*zap.Logger, *zap.SugaredLogger, error) {
	al := zap.NewAtomicLevelAt(Level(level))
	ec := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), al)
	if filter != "" {
		rules, err := zapfilter.ParseRules(filter)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "invalid log filter %q", filter)
		}
		core = zapfilter.NewFilteringCore(core, rules)
	}
	logger := zap.New(core)
	zap.ReplaceGlobals(logger)
	return logger, logger.Sugar(), nil
}
