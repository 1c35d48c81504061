package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetOutputAndRunID(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	SetOutput(&buf)
	WithRunID("run-42")

	Info("processed %d tasks", 3)
	Debug("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, "[info]")
	assert.Contains(t, out, "processed 3 tasks")
	assert.Contains(t, out, "run-42")
	assert.NotContains(t, out, "hidden at info level")
}
