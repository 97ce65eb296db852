package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger is a deliberately small, framework-agnostic logging interface.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger with persistent fields.
	With(fields ...Field) Logger
}

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value interface{}
}

// Level orders log severities; entries below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts debug, info, warn/warning and error (case-insensitive).
// An empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level: %s", s)
}

// StdoutLogger prints one JSON object per line. The zero value is not usable;
// construct with NewStdoutLogger or NewLogger.
type StdoutLogger struct {
	component string
	level     Level
	fields    []Field

	mu  *sync.Mutex
	out io.Writer
}

// NewStdoutLogger creates an info-level logger writing to stdout. component is
// optional and is reported on every entry.
func NewStdoutLogger(component string) *StdoutLogger {
	return NewLogger(os.Stdout, component, LevelInfo)
}

// NewLogger creates a logger writing to w, dropping entries below level.
func NewLogger(w io.Writer, component string, level Level) *StdoutLogger {
	return &StdoutLogger{
		component: component,
		level:     level,
		mu:        &sync.Mutex{},
		out:       w,
	}
}

type entry struct {
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Component string         `json:"component,omitempty"`
	Time      string         `json:"time"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func (s *StdoutLogger) log(level Level, msg string, fields ...Field) {
	if level < s.level {
		return
	}
	m := make(map[string]any, len(s.fields)+len(fields))
	for _, f := range s.fields {
		m[f.Key] = fieldValue(f.Value)
	}
	for _, f := range fields {
		m[f.Key] = fieldValue(f.Value)
	}
	e := entry{
		Level:     level.String(),
		Msg:       msg,
		Component: s.component,
		Time:      time.Now().UTC().Format(time.RFC3339),
		Fields:    m,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	enc, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(s.out, "%s %s %v\n", e.Level, msg, m)
		return
	}
	fmt.Fprintln(s.out, string(enc))
}

// errors marshal to {} otherwise.
func fieldValue(v any) any {
	if err, ok := v.(error); ok && err != nil {
		return err.Error()
	}
	return v
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) { s.log(LevelDebug, msg, fields...) }
func (s *StdoutLogger) Info(msg string, fields ...Field)  { s.log(LevelInfo, msg, fields...) }
func (s *StdoutLogger) Warn(msg string, fields ...Field)  { s.log(LevelWarn, msg, fields...) }
func (s *StdoutLogger) Error(msg string, fields ...Field) { s.log(LevelError, msg, fields...) }

// With returns a child logger. A "component" field replaces the component
// name; every other field is attached to all entries of the child.
func (s *StdoutLogger) With(fields ...Field) Logger {
	child := &StdoutLogger{
		component: s.component,
		level:     s.level,
		fields:    append([]Field(nil), s.fields...),
		mu:        s.mu,
		out:       s.out,
	}
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
				continue
			}
		}
		child.fields = append(child.fields, f)
	}
	return child
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}

func (n NopLogger) With(...Field) Logger { return n }
