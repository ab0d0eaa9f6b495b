package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLILogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewCLILogger()
	l.SetOutput(&buf)

	l.Printf("generated %d files", 3)
	l.Println("done")

	assert.Equal(t, "generated 3 files\ndone\n", buf.String())
}

func TestMCPLogger(t *testing.T) {
	t.Run("silent by default when enabled flag set", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewMCPLogger(&buf, true)
		l.Println("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("writes JSON lines when not silent", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewMCPLogger(&buf, false)
		l.Printf("rendered %s", "users")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "rendered users", entry["message"])
	})

	t.Run("nil writer discards", func(t *testing.T) {
		l := NewMCPLogger(nil, false)
		l.Println("no panic")
	})
}
