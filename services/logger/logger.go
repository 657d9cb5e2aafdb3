package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields trường có cấu trúc gắn kèm log
type Fields map[string]interface{}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
	WithFields(fields Fields) Logger
}

type appNameHook struct {
	appName string
}

func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}

// DefaultLogger implement Logger interface trên nền logrus
type DefaultLogger struct {
	entry *logrus.Entry
}

// NewDefaultLogger tạo logger ghi ra stdout với level cho trước
func NewDefaultLogger(level Level) *DefaultLogger {
	return newLogger(os.Stdout, toLogrusLevel(level))
}

// NewFromEnv tạo logger với level đọc từ LOG_LEVEL, mặc định info
func NewFromEnv(appName string) *DefaultLogger {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	invalid := err != nil
	if invalid {
		level = logrus.InfoLevel
	}

	l := newLogger(os.Stdout, level)
	l.entry.Logger.AddHook(&appNameHook{appName: appName})
	if invalid {
		l.Warn("Invalid LOG_LEVEL '%s', defaulting to INFO", levelStr)
	}
	return l
}

// NewNopLogger logger bỏ qua mọi output, dùng cho test
func NewNopLogger() *DefaultLogger {
	return newLogger(io.Discard, logrus.PanicLevel)
}

func newLogger(out io.Writer, level logrus.Level) *DefaultLogger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return &DefaultLogger{entry: logrus.NewEntry(base)}
}

func toLogrusLevel(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Warn log cảnh báo
func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Debug log debug
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *DefaultLogger) WithFields(fields Fields) Logger {
	return &DefaultLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}
