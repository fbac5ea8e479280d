package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

type level string

const (
	debugLevel level = "DEBUG"
	infoLevel  level = "INFO"
	warnLevel  level = "WARN"
	errorLevel level = "ERROR"

	defaultLogFilePath  = "./logs/museai_server.log"
	defaultMaxSizeBytes = 20 * 1024 * 1024

	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

type logger struct {
	mu           sync.Mutex
	filePath     string
	maxSizeBytes int64
	jsonFormat   bool
	file         *os.File
}

var global = newLoggerFromEnv()

func newLoggerFromEnv() *logger {
	path := strings.TrimSpace(os.Getenv("LOG_FILE_PATH"))
	if path == "" {
		path = defaultLogFilePath
	}
	maxSizeBytes := int64(defaultMaxSizeBytes)
	if raw := strings.TrimSpace(os.Getenv("LOG_MAX_SIZE_MB")); raw != "" {
		if sizeMB, err := strconv.Atoi(raw); err == nil && sizeMB > 0 {
			maxSizeBytes = int64(sizeMB) * 1024 * 1024
		}
	}
	jsonFormat := strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json")
	return &logger{filePath: path, maxSizeBytes: maxSizeBytes, jsonFormat: jsonFormat}
}

func Debugf(format string, args ...any) { global.logf(debugLevel, format, args...) }
func Infof(format string, args ...any)  { global.logf(infoLevel, format, args...) }
func Warnf(format string, args ...any)  { global.logf(warnLevel, format, args...) }
func Errorf(format string, args ...any) { global.logf(errorLevel, format, args...) }

func (l *logger) logf(lv level, format string, args ...any) {
	ts := time.Now().Format(time.RFC3339Nano)
	caller := callerFuncName(3)
	message := fmt.Sprintf(format, args...)

	var line string
	if l.jsonFormat {
		payload := map[string]string{
			"timestamp": ts,
			"level":     string(lv),
			"caller":    caller,
			"message":   message,
		}
		if b, err := json.Marshal(payload); err == nil {
			line = string(b)
		}
	}
	if line == "" {
		line = fmt.Sprintf("%s:%s:%s:%s", ts, lv, caller, message)
	}

	fmt.Fprintln(os.Stdout, colorForLevel(lv)+line+colorReset)
	l.writeToFile(line + "\n")
}

func (l *logger) writeToFile(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureOpen(); err != nil {
		fmt.Fprintf(os.Stderr, "logger open file error: %v\n", err)
		return
	}
	if err := l.rotateIfNeeded(int64(len(line))); err != nil {
		fmt.Fprintf(os.Stderr, "logger rotate error: %v\n", err)
		return
	}
	if _, err := l.file.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "logger write error: %v\n", err)
	}
}

func (l *logger) ensureOpen() error {
	if l.file != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.filePath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	l.file = f
	return nil
}

func (l *logger) rotateIfNeeded(incomingSize int64) error {
	stat, err := l.file.Stat()
	if err != nil {
		return err
	}
	if stat.Size()+incomingSize <= l.maxSizeBytes {
		return nil
	}
	if err := l.file.Close(); err != nil {
		return err
	}
	l.file = nil

	ext := filepath.Ext(l.filePath)
	base := strings.TrimSuffix(l.filePath, ext)
	rotated := fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405"), ext)
	if err := os.Rename(l.filePath, rotated); err != nil {
		return err
	}

	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	l.file = f
	return nil
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

func colorForLevel(lv level) string {
	switch lv {
	case debugLevel:
		return colorGray
	case infoLevel:
		return colorGreen
	case warnLevel:
		return colorYellow
	case errorLevel:
		return colorRed
	default:
		return colorReset
	}
}
