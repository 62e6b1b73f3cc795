package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode    bool
	CurrentLevel LogLevel = LevelWarn
	ShowDebugUI  bool
	SilentMode   bool
)

var logger = zap.NewNop().Sugar()

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	}
	return zapcore.ErrorLevel
}

// ParseLogLevel maps a level name ("debug", "info", "warn", "error") to a LogLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return LevelWarn, fmt.Errorf("parse log level %q: %w", name, err)
	}
	switch {
	case lvl <= zapcore.DebugLevel:
		return LevelDebug, nil
	case lvl == zapcore.InfoLevel:
		return LevelInfo, nil
	case lvl == zapcore.WarnLevel:
		return LevelWarn, nil
	}
	return LevelError, nil
}

// InitLogger installs a colored console logger writing to stderr.
func InitLogger(level LogLevel) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = level != LevelDebug

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(l, level)
	return nil
}

// SetLogger swaps the sink. Tests use it with an observer core.
func SetLogger(l *zap.Logger, level LogLevel) {
	CurrentLevel = level
	DebugMode = level == LevelDebug
	logger = l.Sugar()
}

// SyncLogger flushes buffered entries. Syncing a terminal fails on some platforms and is ignored.
func SyncLogger() {
	_ = logger.Sync()
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}

	switch level {
	case LevelDebug:
		logger.Debugf(format, v...)
	case LevelInfo:
		logger.Infof(format, v...)
	case LevelWarn:
		logger.Warnf(format, v...)
	case LevelError:
		logger.Errorf(format, v...)
	}
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

// RaylibLogCallback forwards raylib trace lines. Levels follow raylib's TraceLogLevel.
func RaylibLogCallback(level int, text string) {
	const prefix = "[RAYLIB] "
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		Debug("%s%s", prefix, text)
	case 3: // LOG_INFO
		Info("%s%s", prefix, text)
	case 4: // LOG_WARNING
		Warn("%s%s", prefix, text)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s%s", prefix, text)
	}
}
