package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Info("db", "connected")
	l.LogAPI("GET", "/api/events", 200, 3*time.Millisecond)
	l.LogSecurity("LOGIN", "wrong password")

	out := buf.String()
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "DB")
	assert.Contains(t, out, "GET /api/events - 200")
	assert.Contains(t, out, "[LOGIN] wrong password")
	assert.Contains(t, out, "logger_test.go")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	l.SetLevel(WARN)

	l.Debug("TEST", "hidden debug")
	l.Info("TEST", "hidden info")
	l.Warn("TEST", "shown warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal("STARTUP", "no database")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "no database")
}

func TestFileOutputIsJSON(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "test")
	require.NoError(t, err)
	l.terminal = &bytes.Buffer{}

	l.Warn("calendar", "seeded")
	l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "test-"+time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var entry LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry.Message == "seeded" {
			found = true
			assert.Equal(t, "WARN", entry.Level)
			assert.Equal(t, "CALENDAR", entry.Category)
		}
	}
	assert.True(t, found)
}
