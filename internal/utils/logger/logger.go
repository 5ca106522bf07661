package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.SugaredLogger

// Init sets up the global logger. Progress messages are logged at info
// level and are only emitted when progress is true; checksum-mismatch and
// precondition warnings are logged at warn/error level and always shown.
func Init(progress bool) {
	level := zapcore.WarnLevel
	if progress {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stdout"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	global = z.Sugar()
}

// Logger returns the global sugared logger. It must return a non-nil
// *SugaredLogger even before Init has been called.
func Logger() *zap.SugaredLogger {
	if global == nil {
		return zap.NewNop().Sugar()
	}
	return global
}
