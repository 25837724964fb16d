// Package logging wraps go.uber.org/zap behind a small Logger interface so
// that application and domain code never depend on a concrete logging backend.
package logging

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured logging key/value pair.
type Field = zap.Field

// Typed field constructors re-exported so callers import only this package.
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Err      = zap.Error
	Any      = zap.Any
	Duration = zap.Duration
	Time     = zap.Time
	Strings  = zap.Strings
)

// Logger is the structured logging interface used throughout TalentMatch-AI.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// With returns a child logger with the given fields attached to every entry.
	With(fields ...Field) Logger

	// Named returns a child logger whose name is joined to the receiver's.
	Named(name string) Logger

	// Sync flushes buffered entries. Call before process exit.
	Sync() error
}

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Format is "json" or "console". Defaults to json.
	Format string
	// Development enables caller annotation and DPanic behaviour.
	Development bool
}

type zapLogger struct {
	l *zap.Logger
}

// New builds a Logger from opts. Invalid levels fall back to info rather than
// failing startup.
func New(opts Options) Logger {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	var enc zapcore.Encoder
	if opts.Format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level)

	zopts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if opts.Development {
		zopts = append(zopts, zap.Development())
	}
	return &zapLogger{l: zap.New(core, zopts...)}
}

func (z *zapLogger) Debug(msg string, fields ...Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...Field)  { z.l.Info(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...Field)  { z.l.Warn(msg, fields...) }
func (z *zapLogger) Error(msg string, fields ...Field) { z.l.Error(msg, fields...) }
func (z *zapLogger) Fatal(msg string, fields ...Field) { z.l.Fatal(msg, fields...) }

func (z *zapLogger) With(fields ...Field) Logger { return &zapLogger{l: z.l.With(fields...)} }
func (z *zapLogger) Named(name string) Logger    { return &zapLogger{l: z.l.Named(name)} }
func (z *zapLogger) Sync() error                 { return z.l.Sync() }

// nopLogger discards everything. Used as the default before SetDefault and in
// tests that do not assert on log output.
type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)  {}
func (nopLogger) Info(string, ...Field)   {}
func (nopLogger) Warn(string, ...Field)   {}
func (nopLogger) Error(string, ...Field)  {}
func (nopLogger) Fatal(string, ...Field)  {}
func (n nopLogger) With(...Field) Logger  { return n }
func (n nopLogger) Named(string) Logger   { return n }
func (nopLogger) Sync() error             { return nil }

// Nop returns a Logger that discards all entries.
func Nop() Logger { return nopLogger{} }

var (
	defaultMu sync.RWMutex
	defaultL  Logger = nopLogger{}
)

// SetDefault installs the process-wide default logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defaultL = l
	defaultMu.Unlock()
}

// Default returns the process-wide default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultL
}

// Elapsed returns a Duration field measuring time since start, for request and
// oracle-call latency logging.
func Elapsed(start time.Time) Field {
	return Duration("elapsed", time.Since(start))
}
