package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Logger is a leveled, category-tagged console logger. Every line carries a
// timestamp, a level, and an upper-case category such as BOOKING or KAFKA so
// the terminal output can be scanned by subsystem. When LOG_FILE is set the
// same lines are mirrored, uncolored, to that file.
type Logger struct {
	file     *os.File
	minLevel level
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelColors = map[level]*color.Color{
	levelDebug: color.New(color.FgCyan),
	levelInfo:  color.New(color.FgGreen),
	levelWarn:  color.New(color.FgYellow),
	levelError: color.New(color.FgRed, color.Bold),
}

var levelNames = map[level]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

func NewLogger() *Logger {
	l := &Logger{minLevel: levelFromEnv()}

	if path := os.Getenv("LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot open %s: %v\n", path, err)
		} else {
			l.file = file
		}
	}

	return l
}

func levelFromEnv() level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

func (l *Logger) log(lv level, category, message string) {
	if lv < l.minLevel {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	tag := levelColors[lv].Sprintf("%-5s", levelNames[lv])
	fmt.Printf("%s %s [%s] %s\n", timestamp, tag, category, message)

	if l.file != nil {
		fmt.Fprintf(l.file, "%s %-5s [%s] %s\n", timestamp, levelNames[lv], category, message)
	}
}

func (l *Logger) Debug(category, message string) { l.log(levelDebug, category, message) }
func (l *Logger) Info(category, message string)  { l.log(levelInfo, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(levelWarn, category, message) }
func (l *Logger) Error(category, message string) { l.log(levelError, category, message) }

func (l *Logger) Fatal(category, message string) {
	l.log(levelError, category, message)
	l.Close()
	os.Exit(1)
}

// LogProcess marks lifecycle milestones (startup, shutdown, wiring).
func (l *Logger) LogProcess(stage, message string) {
	l.Info(stage, message)
}

// LogAPI records one handled HTTP request.
func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

// LogBooking records ledger activity for one ticket.
func (l *Logger) LogBooking(action, ticketID, message string) {
	l.Info("BOOKING", fmt.Sprintf("[%s] %s: %s", action, ticketID, message))
}

// LogRegistry records train catalog activity.
func (l *Logger) LogRegistry(action, trainNumber, message string) {
	l.Info("REGISTRY", fmt.Sprintf("[%s] %s: %s", action, trainNumber, message))
}

// LogKafka records broker activity for one topic.
func (l *Logger) LogKafka(action, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s] %s: %s", action, topic, message))
}

// LogSecurity records rate-limit hits and other suspicious traffic.
func (l *Logger) LogSecurity(event, message string) {
	l.Warn("SECURITY", fmt.Sprintf("[%s] %s", event, message))
}
