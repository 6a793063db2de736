package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "loud")

	log.Debug("debug message")
	log.Info("info message")

	assert.NotContains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "info message")
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").WithField("app", "legal_case_app")

	log.Debug("with field")

	assert.Contains(t, buf.String(), `"app":"legal_case_app"`)
	assert.Contains(t, buf.String(), "with field")
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "info")
	child := parent.WithFields(map[string]interface{}{
		"op":      "list_lawyers",
		"attempt": 1,
	})

	child.Info("child")
	assert.Contains(t, buf.String(), `"op":"list_lawyers"`)
	assert.Contains(t, buf.String(), `"attempt":1`)

	buf.Reset()
	parent.Info("parent")
	assert.NotContains(t, buf.String(), "list_lawyers")
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.WithField("k", "v").WithFields(nil).Fatal("ignored")
	})
}
