package common

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger adapts a *zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewProductionLogger builds a Logger backed by zap, selecting an encoder by
// the ENV_NAME environment variable ("production" vs. everything else) and
// an optional level override from LOG_LEVEL.
func NewProductionLogger() Logger {
	var cfg zap.Config

	if os.Getenv("ENV_NAME") == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if val, ok := os.LookupEnv("LOG_LEVEL"); ok {
		var lvl zapcore.Level
		if err := lvl.Set(val); err != nil {
			log.Printf("sqler: invalid LOG_LEVEL %q, falling back to info: %v", val, err)

			lvl = zapcore.InfoLevel
		}

		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatalf("sqler: can't initialize zap logger: %v", err)
	}

	return &zapLogger{s: logger.Sugar()}
}

func (l *zapLogger) Info(args ...any)                  { l.s.Info(args...) }
func (l *zapLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l *zapLogger) Infoln(args ...any)                { l.s.Infoln(args...) }
func (l *zapLogger) Warn(args ...any)                  { l.s.Warn(args...) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l *zapLogger) Warnln(args ...any)                { l.s.Warnln(args...) }
func (l *zapLogger) Error(args ...any)                 { l.s.Error(args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }
func (l *zapLogger) Errorln(args ...any)               { l.s.Errorln(args...) }
func (l *zapLogger) Debug(args ...any)                 { l.s.Debug(args...) }
func (l *zapLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *zapLogger) Debugln(args ...any)               { l.s.Debugln(args...) }
func (l *zapLogger) Fatal(args ...any)                 { l.s.Fatal(args...) }
func (l *zapLogger) Fatalf(format string, args ...any) { l.s.Fatalf(format, args...) }
func (l *zapLogger) Fatalln(args ...any)               { l.s.Fatalln(args...) }

//nolint:ireturn
func (l *zapLogger) WithFields(fields ...any) Logger {
	return &zapLogger{s: l.s.With(fields...)}
}

func (l *zapLogger) Sync() error { return l.s.Sync() }
