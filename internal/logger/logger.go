package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every entry written by an initialized logger.
const ServiceName = "todo-tracker"

// Log is the process-wide SugaredLogger.
// It discards everything until Initialize is called, so packages and tests can log freely.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize replaces Log with a logger at the given level. Debug level writes
// human-readable console output; every other level writes JSON.
func Initialize(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"
	cfg.InitialFields = map[string]interface{}{"service": ServiceName}

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = built.Sugar()
	return nil
}

// Sync flushes buffered entries. Errors from syncing stderr on some platforms are ignored.
func Sync() {
	_ = Log.Sync()
}
