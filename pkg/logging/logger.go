package logging

import (
	"fmt"
	"log"

	"github.com/fatih/color"

	"github.com/filewatch-io/filewatch/pkg/filewatch"
)

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It is designed to use the
// standard logger provided by the log package, so it respects any flags set
// for that logger. It is safe for concurrent usage.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
	// level is the maximum level at which the logger will output.
	level Level
}

// NewLogger creates a new logger that outputs at or below the specified
// level.
func NewLogger(level Level) *Logger {
	return &Logger{level: level}
}

// RootLogger is the root logger from which all other loggers derive. It
// logs at the info level.
var RootLogger = NewLogger(LevelInfo)

// Sublogger creates a new sublogger with the specified name. The sublogger
// inherits its parent's level.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		prefix: prefix,
		level:  l.level,
	}
}

// output is the internal logging method.
func (l *Logger) output(calldepth int, line string) {
	// Add a prefix if necessary.
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}

	// Log.
	log.Output(calldepth, line)
}

// Info logs information with semantics equivalent to fmt.Println.
func (l *Logger) Info(v ...interface{}) {
	if l != nil && l.level >= LevelInfo {
		l.output(3, fmt.Sprintln(v...))
	}
}

// Infof logs information with semantics equivalent to fmt.Printf.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l != nil && l.level >= LevelInfo {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Debug logs debugging information with semantics equivalent to fmt.Println.
// Output occurs if the logger's level allows it or if debugging has been
// force-enabled via the FILEWATCH_DEBUG environment variable.
func (l *Logger) Debug(v ...interface{}) {
	if l != nil && (l.level >= LevelDebug || filewatch.DebugEnabled) {
		l.output(3, fmt.Sprintln(v...))
	}
}

// Debugf logs debugging information with semantics equivalent to fmt.Printf.
// Output occurs if the logger's level allows it or if debugging has been
// force-enabled via the FILEWATCH_DEBUG environment variable.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l != nil && (l.level >= LevelDebug || filewatch.DebugEnabled) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l != nil && l.level >= LevelWarn {
		l.output(3, color.YellowString("Warning: %v", err))
	}
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l != nil && l.level >= LevelError {
		l.output(3, color.RedString("Error: %v", err))
	}
}
