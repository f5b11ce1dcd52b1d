package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Logger().Named("plan").Debug("costed", zap.Int64("tuples", 3))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "plan", entry.LoggerName)
	assert.Equal(t, int64(3), entry.ContextMap()["tuples"])
}

func TestNewProductionRejectsBadLevel(t *testing.T) {
	_, err := NewProduction("chatty")
	assert.Error(t, err)

	l, err := NewProduction("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
}
