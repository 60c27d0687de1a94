package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, slog.LevelInfo)

	l.Debug("hidden")
	l.Info("linting", "location", "db/changelog.yaml")
	l.Error("failed", Error(errors.New("boom")), Code(2))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "linting")
	assert.Contains(t, out, "location=db/changelog.yaml")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "code=2")
	assert.NotContains(t, out, "\x1b[")
}

func TestInterface(t *testing.T) {
	var _ Interface = New()
	assert.NotNil(t, New().GetSlogLogger())
}
