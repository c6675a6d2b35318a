package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNoOpBeforeInitialize(t *testing.T) {
	require.NotNil(t, Logger)
	// Must not panic before Initialize.
	Logger.Debugw("debug before init", "key", "value")
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(5))
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(true, VerbosityDebug))
	assert.True(t, JSONOutput)
	Logger.Debugw("initialized", "json", true)
	Sync()
}
