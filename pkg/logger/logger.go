package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger, initialized once in main. The no-op
// default keeps code paths safe before Init runs (and in tests).
var Log = zap.NewNop()

// Init builds the global logger. Debug mode uses the human-readable
// development encoder; otherwise JSON at info level.
func Init(serviceName string, debug bool) {
	var (
		l   *zap.Logger
		err error
	)

	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Log = l.With(zap.String("service", serviceName))
}

// Sync flushes buffered log entries. Call it on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
