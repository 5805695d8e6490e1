package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/wizard-village/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	tests := []struct {
		env      string
		contains string
	}{
		{env: "development", contains: "msg=hello"},
		{env: "production", contains: `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&config.Config{Environment: tt.env, LogLevel: slog.LevelInfo}, &buf)
			WithError(WithSessionID(l, "abc"), errors.New("boom")).Info("hello")
			assert.Contains(t, buf.String(), tt.contains)
			assert.Contains(t, buf.String(), "abc")
			assert.Contains(t, buf.String(), "boom")
		})
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&config.Config{LogLevel: slog.LevelWarn}, &buf)
	l.Info("quiet")
	assert.Empty(t, buf.String())
	l.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestSetup_WritesToFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "village.log")
	l, closer, err := Setup(&config.Config{LogLevel: slog.LevelInfo, LogFile: path})
	require.NoError(t, err)
	l.Info("into the file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into the file")
}

func TestSetup_BadPath(t *testing.T) {
	_, _, err := Setup(&config.Config{LogFile: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}
