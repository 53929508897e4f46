package mock

import (
	"fmt"
	"sync"

	"github.com/reportgen/reportgen/models"
)

var _ models.Logger = (*Logger)(nil)

// Entry is a single recorded log line.
type Entry struct {
	Level   string
	Message string
}

// Logger records every message it receives.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: msg})
}

// Entries returns the recorded messages of the given level, all levels if empty.
func (l *Logger) Entries(level string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Entry
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (l *Logger) Debug(msg string)                  { l.record("debug", msg) }
func (l *Logger) Debugf(format string, args ...any) { l.record("debug", fmt.Sprintf(format, args...)) }
func (l *Logger) Info(msg string)                   { l.record("info", msg) }
func (l *Logger) Infof(format string, args ...any)  { l.record("info", fmt.Sprintf(format, args...)) }
func (l *Logger) Warn(msg string)                   { l.record("warn", msg) }
func (l *Logger) Warnf(format string, args ...any)  { l.record("warn", fmt.Sprintf(format, args...)) }
func (l *Logger) Error(msg string)                  { l.record("error", msg) }
func (l *Logger) Errorf(format string, args ...any) { l.record("error", fmt.Sprintf(format, args...)) }
