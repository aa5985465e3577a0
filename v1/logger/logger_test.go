package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core)), logs
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zap.DebugLevel,
		"DEBUG":   zap.DebugLevel,
		"info":    zap.InfoLevel,
		"warning": zap.WarnLevel,
		"warn":    zap.WarnLevel,
		"error":   zap.ErrorLevel,
		"":        zap.InfoLevel,
		"verbose": zap.InfoLevel,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLevel(input), input)
	}
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	log, logs := observedLogger(zap.DebugLevel)

	cause := errors.New("connection reset")
	log.Error("upsert failed", cause,
		map[string]interface{}{"collection": "documents", "points": 3},
		map[string]interface{}{"points": 4},
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.ErrorLevel, entry.Level)
	assert.Equal(t, "upsert failed", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "connection reset", ctx["error"])
	assert.Equal(t, "documents", ctx["collection"])
	assert.EqualValues(t, 4, ctx["points"])
}

func TestLoggerLevels(t *testing.T) {
	log, logs := observedLogger(zap.InfoLevel)

	log.Debug("hidden", nil)
	log.Info("info", nil)
	log.Warn("warn", nil)
	log.Error("error", nil)

	require.Equal(t, 3, logs.Len())
	assert.Equal(t, []string{"info", "warn", "error"}, []string{
		logs.All()[0].Message,
		logs.All()[1].Message,
		logs.All()[2].Message,
	})
	assert.Empty(t, logs.All()[0].ContextMap())
}

func TestConvertToZapFieldsIsSorted(t *testing.T) {
	log, _ := observedLogger(zap.InfoLevel)

	fields := log.convertToZapFields(errors.New("x"), map[string]interface{}{"b": 1, "a": 2, "c": 3})
	require.Len(t, fields, 4)
	assert.Equal(t, "error", fields[0].Key)
	assert.Equal(t, "a", fields[1].Key)
	assert.Equal(t, "b", fields[2].Key)
	assert.Equal(t, "c", fields[3].Key)
}

func TestNewLoggerClient(t *testing.T) {
	log := NewLoggerClient(Config{Level: Debug, ServiceName: "qdrant-sink"})
	require.NotNil(t, log.Zap)
	assert.True(t, log.Zap.Core().Enabled(zap.DebugLevel))
}

func TestFXModule(t *testing.T) {
	var log *Logger
	app := fxtest.New(t,
		fx.Supply(Config{Level: Warning}),
		FXModule,
		fx.Populate(&log),
	)
	require.NoError(t, app.Start(context.Background()))
	require.NotNil(t, log)
	assert.False(t, log.Zap.Core().Enabled(zap.InfoLevel))
	app.RequireStop()
}
