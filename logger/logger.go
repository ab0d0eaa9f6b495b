package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is the logging interface shared by the CLI and the MCP
// server. The CLI variant prints human-readable lines; the MCP variant
// stays off stdout, which carries the protocol stream.
type Logger interface {
	Printf(format string, v ...any)
	Println(v ...any)
	SetOutput(w io.Writer)
}

// CLILogger writes plain lines without timestamps, suitable for
// user-facing command output.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger returns a logger writing to stdout.
func NewCLILogger() *CLILogger {
	return &CLILogger{logger: log.New(os.Stdout, "", 0)}
}

func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// MCPLogger emits one JSON object per message. It is silent by
// default: stdout belongs to the stdio protocol, so diagnostics go to
// a separate writer (usually stderr or a file) when enabled.
//
// MCPLogger is safe for concurrent use.
type MCPLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewMCPLogger returns an MCP-mode logger. A nil writer discards
// output.
func NewMCPLogger(writer io.Writer, silent bool) *MCPLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &MCPLogger{writer: writer, silent: silent}
}

func (m *MCPLogger) Printf(format string, v ...any) {
	m.write(fmt.Sprintf(format, v...))
}

func (m *MCPLogger) Println(v ...any) {
	m.write(fmt.Sprint(v...))
}

func (m *MCPLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	m.writer = w
}

func (m *MCPLogger) write(msg string) {
	if m.silent {
		return
	}
	data, _ := json.Marshal(map[string]any{"level": "info", "message": msg})
	m.mu.Lock()
	fmt.Fprintln(m.writer, string(data))
	m.mu.Unlock()
}
