// Package testutil provides shared helpers for unit tests.
package testutil

import (
	"strings"
	"sync"

	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level  string
	Msg    string
	Fields []logging.Field
}

// CapturingLogger records every log call for assertion in tests.
// It is safe for concurrent use.
type CapturingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewCapturingLogger returns an empty CapturingLogger.
func NewCapturingLogger() *CapturingLogger {
	return &CapturingLogger{}
}

func (c *CapturingLogger) record(level, msg string, fields []logging.Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, LogEntry{Level: level, Msg: msg, Fields: fields})
}

func (c *CapturingLogger) Debug(msg string, fields ...logging.Field) { c.record("debug", msg, fields) }
func (c *CapturingLogger) Info(msg string, fields ...logging.Field)  { c.record("info", msg, fields) }
func (c *CapturingLogger) Warn(msg string, fields ...logging.Field)  { c.record("warn", msg, fields) }
func (c *CapturingLogger) Error(msg string, fields ...logging.Field) { c.record("error", msg, fields) }
func (c *CapturingLogger) Fatal(msg string, fields ...logging.Field) { c.record("fatal", msg, fields) }

func (c *CapturingLogger) With(...logging.Field) logging.Logger { return c }
func (c *CapturingLogger) Named(string) logging.Logger          { return c }
func (c *CapturingLogger) Sync() error                          { return nil }

// Entries returns a copy of all captured entries.
func (c *CapturingLogger) Entries() []LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// CountLevel returns the number of entries captured at the given level.
func (c *CapturingLogger) CountLevel(level string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// HasMessage reports whether any entry's message contains substr.
func (c *CapturingLogger) HasMessage(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}
