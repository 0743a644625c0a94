package logger

import (
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.Logger

// Init initializes the logger and replaces zap's global logger.
// An output other than stdout/stderr is treated as a file path and rotated.
func Init(cfg config.LogConfig) error {
	var zcfg zap.Config

	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	if cfg.Format == "json" {
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var err error
	switch cfg.Output {
	case "", "stdout", "stderr":
		if cfg.Output == "stdout" {
			zcfg.OutputPaths = []string{"stdout"}
		}
		log, err = zcfg.Build()
		if err != nil {
			return err
		}
	default:
		log = zap.New(newRotatingCore(zcfg, cfg), zap.AddCaller())
	}

	zap.ReplaceGlobals(log)
	return nil
}

func newRotatingCore(zcfg zap.Config, cfg config.LogConfig) zapcore.Core {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Output,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	})

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(zcfg.EncoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(zcfg.EncoderConfig)
	}
	return zapcore.NewCore(encoder, sink, zcfg.Level)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the logger instance
func Get() *zap.Logger {
	if log == nil {
		// Fallback to default logger
		log, _ = zap.NewProduction()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	Get().Warn(msg, fields...)
}
