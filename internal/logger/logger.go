package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelMapping = map[LogLevel]zapcore.Level{
	DEBUG: zapcore.DebugLevel,
	INFO:  zapcore.InfoLevel,
	WARN:  zapcore.WarnLevel,
	ERROR: zapcore.ErrorLevel,
}

// ParseLevel converts DEBUG, INFO, WARN or ERROR (any case) to a LogLevel
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", level)
	}
}

// FileOptions enables a rotated JSON log file next to the console output
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger provides structured logging with timestamp, pid and caller
type Logger struct {
	z     *zap.Logger
	level zap.AtomicLevel
	file  *lumberjack.Logger
}

// NewLogger creates a console logger; errors go to stderr, everything else to stdout
func NewLogger(minLevel LogLevel) *Logger {
	l, _ := NewLoggerWithFile(minLevel, nil)
	return l
}

// NewLoggerWithFile creates a logger that also writes to a rotated file when opts is set
func NewLoggerWithFile(minLevel LogLevel, opts *FileOptions) (*Logger, error) {
	level := zap.NewAtomicLevelAt(levelMapping[minLevel])
	encoder := zapcore.NewJSONEncoder(encoderConfig())

	errorsOnly := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel && level.Enabled(lvl)
	})
	belowErrors := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl < zapcore.ErrorLevel && level.Enabled(lvl)
	})

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), belowErrors),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), errorsOnly),
	}

	var file *lumberjack.Logger
	if opts != nil && opts.Path != "" {
		file = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	z := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(2), // log -> Debug/Info/Warn/Error -> actual caller
		zap.Fields(zap.Int("pid", os.Getpid())),
	)
	return &Logger{z: z, level: level, file: file}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// toFields turns the context map into zap fields in key order
func toFields(context map[string]interface{}) []zap.Field {
	if len(context) == 0 {
		return nil
	}
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, context[k]))
	}
	return fields
}

func (l *Logger) log(level LogLevel, message string, context []map[string]interface{}) {
	var ctx map[string]interface{}
	if len(context) > 0 {
		ctx = context[0]
	}
	if ce := l.z.Check(levelMapping[level], message); ce != nil {
		ce.Write(toFields(ctx)...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(message string, context ...map[string]interface{}) {
	l.log(DEBUG, message, context)
}

// Info logs an info message
func (l *Logger) Info(message string, context ...map[string]interface{}) {
	l.log(INFO, message, context)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, context ...map[string]interface{}) {
	l.log(WARN, message, context)
}

// Error logs an error message
func (l *Logger) Error(message string, context ...map[string]interface{}) {
	l.log(ERROR, message, context)
}

// SetMinLevel changes the level at runtime
func (l *Logger) SetMinLevel(level LogLevel) {
	l.level.SetLevel(levelMapping[level])
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level LogLevel) bool {
	return l.level.Enabled(levelMapping[level])
}

// Sync flushes buffered entries and closes the log file if one is open
func (l *Logger) Sync() error {
	_ = l.z.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Package-level convenience functions using default logger

var (
	mu            sync.RWMutex
	defaultLogger = NewLogger(INFO)
)

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Configure replaces the default logger, closing the previous one's file
func Configure(minLevel LogLevel, opts *FileOptions) error {
	l, err := NewLoggerWithFile(minLevel, opts)
	if err != nil {
		return err
	}
	mu.Lock()
	prev := defaultLogger
	defaultLogger = l
	mu.Unlock()
	return prev.Sync()
}

// Debug logs a debug message using the default logger
func Debug(message string, context ...map[string]interface{}) {
	current().log(DEBUG, message, context)
}

// Info logs an info message using the default logger
func Info(message string, context ...map[string]interface{}) {
	current().log(INFO, message, context)
}

// Warn logs a warning message using the default logger
func Warn(message string, context ...map[string]interface{}) {
	current().log(WARN, message, context)
}

// Error logs an error message using the default logger
func Error(message string, context ...map[string]interface{}) {
	current().log(ERROR, message, context)
}

// SetMinLevel sets the minimum log level for the default logger
func SetMinLevel(level LogLevel) {
	current().SetMinLevel(level)
}

// Sync flushes the default logger
func Sync() error {
	return current().Sync()
}
