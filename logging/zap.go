package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is a Logger backed by a zap sugared logger
type ZapLogger struct {
	s *zap.SugaredLogger
}

// NewZap creates a production zap logger writing to stderr.
// The debug messages will only be logged in verbose mode.
func NewZap(verbose bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise the logger: %w", err)
	}
	return &ZapLogger{s: l.Sugar()}, nil
}

// FromZap wraps an existing zap logger
func FromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{s: l.Sugar()}
}

// Sync flushes any buffered log entries
func (z *ZapLogger) Sync() error {
	return z.s.Sync()
}

func (z *ZapLogger) Error(args ...interface{})                 { z.s.Error(args...) }
func (z *ZapLogger) Errorf(format string, args ...interface{}) { z.s.Errorf(format, args...) }
func (z *ZapLogger) Errorln(args ...interface{})               { z.s.Errorln(args...) }

func (z *ZapLogger) Debug(args ...interface{})                 { z.s.Debug(args...) }
func (z *ZapLogger) Debugf(format string, args ...interface{}) { z.s.Debugf(format, args...) }
func (z *ZapLogger) Debugln(args ...interface{})               { z.s.Debugln(args...) }

func (z *ZapLogger) Warning(args ...interface{})                 { z.s.Warn(args...) }
func (z *ZapLogger) Warningf(format string, args ...interface{}) { z.s.Warnf(format, args...) }
func (z *ZapLogger) Warningln(args ...interface{})               { z.s.Warnln(args...) }

func (z *ZapLogger) Info(args ...interface{})                 { z.s.Info(args...) }
func (z *ZapLogger) Infof(format string, args ...interface{}) { z.s.Infof(format, args...) }
func (z *ZapLogger) Infoln(args ...interface{})               { z.s.Infoln(args...) }

func (z *ZapLogger) Fatal(args ...interface{})                 { z.s.Fatal(args...) }
func (z *ZapLogger) Fatalf(format string, args ...interface{}) { z.s.Fatalf(format, args...) }
func (z *ZapLogger) Fatalln(args ...interface{})               { z.s.Fatalln(args...) }
