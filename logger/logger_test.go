package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "debug", "json")

	assert.True(t, L.Enabled(context.Background(), slog.LevelDebug))

	L.Info("lead ingested", "contact_id", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "lead ingested", line["msg"])
	assert.Equal(t, "abc", line["contact_id"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info", "text")

	scoped := L.With("request_id", "01HX")
	ctx := WithContext(context.Background(), scoped)

	assert.Same(t, scoped, FromContext(ctx))
	assert.Same(t, L, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}
