package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifierTo(&buf)

	n.Success("Login successful!")
	n.Error("Failed to fetch employees")
	n.Info("3 employees match")

	out := buf.String()
	assert.Contains(t, out, "Login successful!")
	assert.Contains(t, out, "Failed to fetch employees")
	assert.Contains(t, out, "3 employees match")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Success("created")
	r.Error("rejected")
	r.Error("timed out")
	r.Info("note")

	assert.Len(t, r.Records(), 4)
	assert.Equal(t, []string{"created"}, r.Successes())
	assert.Equal(t, []string{"rejected", "timed out"}, r.Errors())

	r.Reset()
	assert.Empty(t, r.Records())
}
