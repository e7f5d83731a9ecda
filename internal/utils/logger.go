package utils

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool
	ShowDebugUI    bool
	// PlainLogs drops the ANSI colour codes, for log files.
	PlainLogs bool
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLogLevel accepts the level names case-insensitively.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// SetOutput redirects all log output. The terminal command uses it to keep
// log lines off the screen it draws on.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

const ansiReset = "\033[0m"

var levelColors = [...]string{
	LevelDebug: "\033[36m",
	LevelInfo:  "\033[34m",
	LevelWarn:  "\033[33m",
	LevelError: "\033[31m",
}

// tag renders a bracketed label, coloured unless PlainLogs is set.
func tag(label, color string) string {
	if PlainLogs {
		return "[" + label + "] "
	}
	return color + "[" + label + "]" + ansiReset + " "
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	color := ""
	if level >= LevelDebug && int(level) < len(levelColors) {
		color = levelColors[level]
	}
	log.Print(tag(level.String(), color) + fmt.Sprintf(format, v...))
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

// raylibLevel maps a raylib TraceLogLevel onto ours. Raylib info chatter is
// only shown at info level or with ShowRaylibInfo.
func raylibLevel(level int) (LogLevel, bool) {
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		return LevelDebug, true
	case 3: // LOG_INFO
		if ShowRaylibInfo && CurrentLevel > LevelInfo {
			return CurrentLevel, true
		}
		return LevelInfo, true
	case 4: // LOG_WARNING
		return LevelWarn, true
	case 5, 6: // LOG_ERROR, LOG_FATAL
		return LevelError, true
	}
	return 0, false
}

func RaylibLogCallback(level int, text string) {
	lvl, ok := raylibLevel(level)
	if !ok {
		return
	}
	logMessage(lvl, "%s%s", tag("RAYLIB", "\033[35m"), text)
}
