package server

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger receives server lifecycle and per-connection events.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one structured key/value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// DefaultLogger writes timestamped lines to standard output.
type DefaultLogger struct {
	logger *log.Logger
}

// NewDefaultLogger returns a logger writing to standard output.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{logger: log.New(os.Stdout, "", 0)}
}

// NewWriterLogger returns a logger writing to w.
func NewWriterLogger(w io.Writer) *DefaultLogger {
	return &DefaultLogger{logger: log.New(w, "", 0)}
}

func (l *DefaultLogger) Debug(msg string, fields ...Field) {
	l.log("DEBUG", msg, fields...)
}

func (l *DefaultLogger) Info(msg string, fields ...Field) {
	l.log("INFO", msg, fields...)
}

func (l *DefaultLogger) Warn(msg string, fields ...Field) {
	l.log("WARN", msg, fields...)
}

func (l *DefaultLogger) Error(msg string, fields ...Field) {
	l.log("ERROR", msg, fields...)
}

func (l *DefaultLogger) log(level, msg string, fields ...Field) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	output := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	if len(fields) > 0 {
		output += " |"
		for _, f := range fields {
			output += fmt.Sprintf(" %s=%v", f.Key, truncateValue(f.Value))
		}
	}

	if l.logger == nil {
		l.logger = log.New(os.Stdout, "", 0)
	}

	l.logger.Println(output)
}

// truncateValue keeps log lines bounded when a field carries a long
// string, like a request body or an injected header value.
func truncateValue(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		if len(s) > 100 {
			return s[:100] + "...[truncated]"
		}
	}
	return v
}

// NullLogger discards everything. Tests use it to keep output quiet.
type NullLogger struct{}

func (n *NullLogger) Debug(msg string, fields ...Field) {}
func (n *NullLogger) Info(msg string, fields ...Field)  {}
func (n *NullLogger) Warn(msg string, fields ...Field)  {}
func (n *NullLogger) Error(msg string, fields ...Field) {}
