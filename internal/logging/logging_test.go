package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestNew_WritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "nottodo.log")
	logger, err := New("info", p)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"shown"`)
	assert.NotContains(t, string(b), "hidden")
}

func TestNew_Level(t *testing.T) {
	logger, err := New("error", "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestForTUI_NoFileIsNop(t *testing.T) {
	logger, err := ForTUI("debug", "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
