package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level LogLevel) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev, prevLevel := logger, CurrentLevel
	SetLogger(zap.New(core), level)
	t.Cleanup(func() {
		logger, CurrentLevel = prev, prevLevel
		DebugMode = prevLevel == LevelDebug
	})
	return logs
}

func TestLevelFiltering(t *testing.T) {
	logs := observe(t, LevelWarn)

	Debug("dropped %d", 1)
	Info("dropped %d", 2)
	Warn("kept %d", 3)
	Error("kept %d", 4)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "kept 3", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "kept 4", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestDebugLevelEnablesDebugMode(t *testing.T) {
	logs := observe(t, LevelDebug)

	assert.True(t, DebugMode)
	Debug("loading %s", "tree")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "loading tree", logs.All()[0].Message)
}

func TestRaylibLogCallback(t *testing.T) {
	logs := observe(t, LevelInfo)

	RaylibLogCallback(2, "debug line")
	RaylibLogCallback(3, "TEXTURE: loaded")
	RaylibLogCallback(4, "SHADER: warning")
	RaylibLogCallback(5, "FILEIO: missing")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "[RAYLIB] TEXTURE: loaded", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"fatal": LevelError,
	}
	for name, want := range cases {
		got, err := ParseLogLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}
