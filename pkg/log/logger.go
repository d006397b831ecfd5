// Package log provides the named, leveled loggers shared by the renderer,
// the scene loaders, the CLI and the web server.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

// Level is the minimum severity a module emits
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[string]Level{
	"debug":   Debug,
	"info":    Info,
	"notice":  Notice,
	"warning": Warning,
	"error":   Error,
}

var (
	colorFormat = logging.MustStringFormatter(
		`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
	)
	plainFormat = logging.MustStringFormatter(
		`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
	)
)

var (
	backend      logging.LeveledBackend
	defaultLevel = Notice
	moduleLevels = map[string]Level{}
)

// Logger is satisfied by the go-logging loggers returned from New
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for module. Loggers are cheap and may be created at
// package init; output and levels are resolved when a message is logged.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// ParseLevel maps a level name such as "info" to its Level
func ParseLevel(name string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

func (l Level) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// SetOutput sends all modules to w, with ANSI colors when color is set.
// Configured levels carry over to the new output.
func SetOutput(w io.Writer, color bool) {
	format := plainFormat
	if color {
		format = colorFormat
	}
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	applyLevels()
	logging.SetBackend(backend)
}

// SetLevel sets the level of every module without its own override
func SetLevel(level Level) {
	defaultLevel = level
	applyLevels()
}

// SetModuleLevel overrides the level of a single module
func SetModuleLevel(module string, level Level) {
	moduleLevels[module] = level
	backend.SetLevel(toLoggingLevel(level), module)
}

// ResetModuleLevels drops all per-module overrides
func ResetModuleLevels() {
	moduleLevels = map[string]Level{}
	applyLevels()
}

func applyLevels() {
	backend.SetLevel(toLoggingLevel(defaultLevel), "")
	for module, level := range moduleLevels {
		backend.SetLevel(toLoggingLevel(level), module)
	}
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

// IsEnabled reports whether modules without an override emit level
func IsEnabled(level Level) bool {
	return backend.IsEnabledFor(toLoggingLevel(level), "")
}

// IsEnabledFor reports whether module emits level
func IsEnabledFor(module string, level Level) bool {
	return backend.IsEnabledFor(toLoggingLevel(level), module)
}

func init() {
	// stdout may carry a rendered image
	SetOutput(os.Stderr, true)
}
