// Package logging provides structured leveled logging for NetAtlas.
//
// Components obtain named loggers and attach structured fields:
//
//	logger := logging.GetLogger("topology")
//	logger.Info("hierarchy assembled")
//	logger.InfoWithFields("snapshot fetched",
//	    logging.Field("node_count", len(nodes)),
//	    logging.Field("duration_ms", elapsed.Milliseconds()),
//	)
//
// Loggers are immutable; WithField returns a new instance, so loggers are
// safe to share across goroutines. DEBUG/INFO/WARN go to stdout, ERROR and
// FATAL to stderr. Fatal exits with code 1.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the logging severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// ParseLevel converts a level name to a Level. Unknown names are an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("invalid log level %q (must be debug, info, warn, error or fatal)", s)
	}
}

// LogField is a structured key/value pair attached to a log line.
type LogField struct {
	Key   string
	Value interface{}
}

// Field creates a structured logging field.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

var (
	defaultLevel = INFO
	levelMu      sync.RWMutex

	// exitFunc is called by Fatal; overridable in tests.
	exitFunc = os.Exit
)

// Initialize sets the process-wide default level. Loggers created afterwards
// pick it up; an invalid level name is an error.
func Initialize(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	levelMu.Lock()
	defaultLevel = parsed
	levelMu.Unlock()
	return nil
}

// Logger emits formatted and structured log lines for one named component.
type Logger struct {
	name   string
	fields map[string]interface{}
}

// GetLogger returns a logger named after a component ("api", "upstream", ...).
func GetLogger(name string) *Logger {
	return &Logger{name: name, fields: map[string]interface{}{}}
}

// WithField returns a copy of the logger with one persistent field added.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	next := &Logger{name: l.name, fields: make(map[string]interface{}, len(l.fields)+1)}
	for k, v := range l.fields {
		next.fields[k] = v
	}
	next.fields[key] = value
	return next
}

// WithFields returns a copy of the logger with several persistent fields added.
func (l *Logger) WithFields(fields ...LogField) *Logger {
	next := &Logger{name: l.name, fields: make(map[string]interface{}, len(l.fields)+len(fields))}
	for k, v := range l.fields {
		next.fields[k] = v
	}
	for _, f := range fields {
		next.fields[f.Key] = f.Value
	}
	return next
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.logf(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.logf(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.logf(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.logf(ERROR, msg, args...) }

// Fatal logs at FATAL and terminates the process with exit code 1.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.logf(FATAL, msg, args...)
	exitFunc(1)
}

// ErrorWithErr logs an error message with the error appended.
func (l *Logger) ErrorWithErr(msg string, err error) {
	l.logf(ERROR, "%s - %v", msg, err)
}

func (l *Logger) DebugWithFields(msg string, fields ...LogField) { l.logFields(DEBUG, msg, fields) }
func (l *Logger) InfoWithFields(msg string, fields ...LogField)  { l.logFields(INFO, msg, fields) }
func (l *Logger) WarnWithFields(msg string, fields ...LogField)  { l.logFields(WARN, msg, fields) }
func (l *Logger) ErrorWithFields(msg string, fields ...LogField) { l.logFields(ERROR, msg, fields) }

func (l *Logger) enabled(level Level) bool {
	levelMu.RLock()
	defer levelMu.RUnlock()
	return level >= defaultLevel
}

func (l *Logger) logf(level Level, msg string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.write(level, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) logFields(level Level, msg string, fields []LogField) {
	if !l.enabled(level) {
		return
	}
	l.write(level, msg, fields)
}

func (l *Logger) write(level Level, msg string, extra []LogField) {
	line := fmt.Sprintf("[%s] [%s] %s: %s", timestamp(), levelNames[level], l.name, msg)

	if len(l.fields) > 0 || len(extra) > 0 {
		line += " |"
		for k, v := range l.fields {
			line += fmt.Sprintf(" %s=%v", k, v)
		}
		for _, f := range extra {
			line += fmt.Sprintf(" %s=%v", f.Key, f.Value)
		}
	}

	out := os.Stdout
	if level >= ERROR {
		out = os.Stderr
	}
	fmt.Fprintln(out, line)
}

// timestamp returns an RFC3339 timestamp, overridable via LOG_TIMESTAMP for
// deterministic test output.
func timestamp() string {
	if override := os.Getenv("LOG_TIMESTAMP"); override != "" {
		return override
	}
	return time.Now().Format(time.RFC3339)
}
