// Package logger provides structured logging for the bake tools,
// built on zap with optional rotating file output.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance.
var Log *zap.Logger

// Sugar is the sugared logger for convenient logging.
var Sugar *zap.SugaredLogger

func init() {
	// No-op defaults so pipeline code can log before Init runs.
	Log = zap.NewNop()
	Sugar = Log.Sugar()
}

// Init initializes the logger at the given level. When logFile is
// non-empty, output also goes to a size-rotated file.
func Init(level, logFile string) error {
	return InitWithOptions(level, logFile, true)
}

// InitWithOptions initializes the logger with explicit console
// control. Tests disable console output to keep go test quiet.
func InitWithOptions(level, logFile string, console bool) error {
	lvl := parseLevel(level)

	var cores []zapcore.Core
	if console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(
				zapcore.TimeEncoderOfLayout("15:04:05"),
				zapcore.CapitalColorLevelEncoder,
			)),
			zapcore.AddSync(os.Stdout),
			lvl,
		))
	}
	if logFile != "" {
		writer := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(
				zapcore.ISO8601TimeEncoder,
				zapcore.CapitalLevelEncoder,
			)),
			zapcore.AddSync(writer),
			lvl,
		))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}
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

// Sync flushes any buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }

// Info logs an info message.
func Info(msg string, fields ...zap.Field) { Log.Info(msg, fields...) }

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) { Log.Warn(msg, fields...) }

// Error logs an error message.
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }
