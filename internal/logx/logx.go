// Package logx is a thin wrapper over zap giving lexigraph one consistent
// logger shape across its cmd/ binaries.
package logx

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.SugaredLogger so callers use plain-argument calls
// instead of zap's field constructors.
type Logger struct {
	z *zap.SugaredLogger
}

// New builds a Logger at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to "info".
func New(level string) *Logger {
	lvl := zapcore.InfoLevel
	if err := (&lvl).UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return &Logger{z: z.Sugar()}
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.z.Debugf(msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.z.Infof(msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.z.Warnf(msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.z.Errorf(msg, args...) }

// Sync flushes any buffered log entries. Call before process exit.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
