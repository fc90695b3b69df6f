package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

// Level is a message severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var levelColors = [...]string{
	DEBUG: "\033[37m",
	INFO:  "\033[34m",
	WARN:  "\033[33m",
	ERROR: "\033[31m",
}

func (l Level) String() string {
	if l < DEBUG || l > ERROR {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

var Stdlog, Errlog *log.Logger

var (
	mu       sync.Mutex
	minLevel = INFO
	logDir   string
	colored  bool
)

func init() {
	var stdout io.Writer = os.Stdout
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		stdout = colorable.NewColorable(os.Stdout)
		colored = true
	}
	Stdlog = log.New(stdout, "", log.Ldate|log.Ltime)
	Errlog = log.New(colorable.NewColorableStderr(), "Error: ", log.Ldate|log.Ltime)
}

// SetLevel drops messages below lvl.
func SetLevel(lvl Level) {
	mu.Lock()
	minLevel = lvl
	mu.Unlock()
}

// SetDir makes LogMessage and PrintIfErr also append to rotating files in
// dir. An empty dir turns file logging off.
func SetDir(dir string) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("log: create %s: %w", dir, err)
		}
	}
	mu.Lock()
	logDir = dir
	mu.Unlock()
	return nil
}

// Enabled reports whether a message at lvl would be written.
func Enabled(lvl Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return lvl >= minLevel
}

// LogMessage writes message at level to stdout and, when a directory is
// set, to the current stdlog file.
func LogMessage(level Level, message string) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}

	tag := level.String()
	if colored {
		tag = levelColors[level] + tag + "\033[0m"
	}
	Stdlog.Printf("[%s] %s\n", tag, message)

	appendFile("stdlog", fmt.Sprintf("[%s] %s", level, message))
}

// Logf formats and logs at level.
func Logf(level Level, format string, v ...interface{}) {
	if !Enabled(level) {
		return
	}
	LogMessage(level, fmt.Sprintf(format, v...))
}

// PrintIfErr logs *err with msg if it is non-nil. Meant for deferred calls.
func PrintIfErr(msg string, err *error) {
	if err == nil || *err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()

	Errlog.Printf("%s: %v\n", msg, *err)
	appendFile("errors", fmt.Sprintf("%s: %v", msg, *err))
}

// appendFile writes one line into the rotating file for typeLog. Callers
// hold mu.
func appendFile(typeLog, line string) {
	if logDir == "" {
		return
	}

	logPath, suffix := getLogFilePath(typeLog)
	rotateLogs(typeLog, suffix)

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		Errlog.Printf("[ERROR] open %s: %v", logPath, err)
		return
	}
	defer logFile.Close()

	logger := log.New(logFile, "", log.Ldate|log.Ltime)
	logger.Println(line)
}

// getLogFilePath names the log file for the current third of the month and
// returns its suffix.
func getLogFilePath(typeLog string) (string, int) {
	day := time.Now().Day()
	var suffix int
	switch {
	case day <= 9:
		suffix = 0
	case day <= 19:
		suffix = 1
	default:
		suffix = 2
	}
	return filepath.Join(logDir, fmt.Sprintf("%s-%d.log", typeLog, suffix)), suffix
}

// rotateLogs removes the file that will be written next, so at most two
// thirds of a month are kept per log type.
func rotateLogs(typeLog string, currentSuffix int) {
	next := (currentSuffix + 1) % 3
	fileToDelete := filepath.Join(logDir, fmt.Sprintf("%s-%d.log", typeLog, next))

	st, err := os.Stat(fileToDelete)
	if err != nil {
		return
	}
	// only stale files: the next slot may still hold last month's data
	if time.Since(st.ModTime()) < 24*time.Hour {
		return
	}
	if err := os.Remove(fileToDelete); err != nil {
		Errlog.Printf("[WARN] remove %s: %v", fileToDelete, err)
	}
}
