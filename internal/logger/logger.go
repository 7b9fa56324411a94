package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/layfhaker/bezneg/internal/config"
)

// log levels in increasing severity
const (
	levelDebug = iota
	levelInfo
	levelWarning
	levelError
	levelFatal
)

var (
	minLevel = levelInfo
	std      = log.New(os.Stdout, "", log.Ldate|log.Ltime)
)

// createLogFilePath generates a log file path with the current date
func createLogFilePath(logDir, prefix string) string {
	currentDate := time.Now().Format("2006-01-02")
	return filepath.Join(logDir, fmt.Sprintf("%s-%s.log", prefix, currentDate))
}

// createRotatingLogger creates a lumberjack rotating logger
func createRotatingLogger(logFilePath string, cfg *config.Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    cfg.Logger.Rotation.MaxSize,
		MaxBackups: cfg.Logger.Rotation.MaxBackups,
		MaxAge:     cfg.Logger.Rotation.MaxAge,
		Compress:   cfg.Logger.Rotation.Compress,
	}
}

// createMultiWriter creates a writer that outputs to both stdout and log file
func createMultiWriter(rotatingLogger io.Writer) io.Writer {
	return io.MultiWriter(os.Stdout, rotatingLogger)
}

func parseLevel(level string) int {
	switch level {
	case "DEBUG":
		return levelDebug
	case "INFO":
		return levelInfo
	case "WARNING", "WARN":
		return levelWarning
	case "ERROR":
		return levelError
	case "FATAL":
		return levelFatal
	default:
		return levelInfo
	}
}

// Setup configures logging to output to both stdout and a rotating log file
func Setup(cfg *config.Config) error {
	logDir := cfg.Logger.Directory

	// Create log directory if it doesn't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFilePath := createLogFilePath(logDir, "bezneg")
	rotatingLogger := createRotatingLogger(logFilePath, cfg)
	multiWriter := createMultiWriter(rotatingLogger)

	minLevel = parseLevel(cfg.Logger.Level)

	std = log.New(multiWriter, "", log.Ldate|log.Ltime|log.Lshortfile)

	// Route the standard logger through the same writer so that
	// third-party code using log.Printf ends up in the file too
	log.SetOutput(multiWriter)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	Infof("Logging initialized: writing to %s", logFilePath)
	return nil
}

// GetRotatingLogWriter returns a rotating log writer for custom loggers
func GetRotatingLogWriter(cfg *config.Config, prefix string) io.Writer {
	logFilePath := createLogFilePath(cfg.Logger.Directory, prefix)
	rotatingLogger := createRotatingLogger(logFilePath, cfg)
	return createMultiWriter(rotatingLogger)
}

func output(level int, tag, message string) {
	if level < minLevel {
		return
	}
	// Calldepth 3: output -> leveled helper -> caller
	std.Output(3, fmt.Sprintf("[%s] %s", tag, message))
}

func Debugf(format string, args ...interface{}) {
	output(levelDebug, "DEBUG", fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) {
	output(levelInfo, "INFO", fmt.Sprintf(format, args...))
}

func Info(args ...interface{}) {
	output(levelInfo, "INFO", fmt.Sprint(args...))
}

func Warningf(format string, args ...interface{}) {
	output(levelWarning, "WARNING", fmt.Sprintf(format, args...))
}

func Warning(args ...interface{}) {
	output(levelWarning, "WARNING", fmt.Sprint(args...))
}

func Errorf(format string, args ...interface{}) {
	output(levelError, "ERROR", fmt.Sprintf(format, args...))
}

func Error(args ...interface{}) {
	output(levelError, "ERROR", fmt.Sprint(args...))
}

func Fatalf(format string, args ...interface{}) {
	output(levelFatal, "FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}

func Fatal(args ...interface{}) {
	output(levelFatal, "FATAL", fmt.Sprint(args...))
	os.Exit(1)
}
