// Package logger provides structured logging for Loom.
//
// It wraps Uber's zap logger with a package-global instance so the auth
// components can record the specific failure codes that identity
// protection strips from external responses.
//
//	logger.InitLogger("debug") // Options: debug, info, warn, error
//
//	logger.L().Info("authentication failed",
//	    zap.String("code", string(code)),
//	    zap.String("list", listKey),
//	)
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

func InitLogger(level string) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	Log, err = cfg.Build()
	if err != nil {
		panic(err)
	}
}

// L returns the global logger, or a no-op logger when InitLogger has not
// been called (e.g. in library consumers that bring their own logging).
func L() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}
