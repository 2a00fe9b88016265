// Package logging builds the process-wide zap logger.
// Helpers are short-lived CLI processes, so everything goes to stderr and
// there is no log rotation or sampling to configure.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv enables debug logging when set to a truthy value, independent of
// the --verbose flag. Useful when the invoking agent controls the environment
// but not the argument list.
const DebugEnv = "SPECSMITH_DEBUG"

// New returns a logger writing console-encoded lines to stderr.
// Debug level is enabled by verbose or the SPECSMITH_DEBUG variable.
func New(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose || debugEnvSet() {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "" // timestamps are noise for a subsecond process

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

func debugEnvSet() bool {
	v := os.Getenv(DebugEnv)
	return v == "1" || v == "true"
}
