package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, logrus.InfoLevel)

	l.Debug("hidden %d", 1)
	l.Info("reservation %d created", 7)
	l.WithFields(Fields{"request_id": "req-1"}).Warn("slow query")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "reservation 7 created")
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "level=warning")
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	l := NewFromEnv("hotelpms")
	assert.Equal(t, logrus.DebugLevel, l.entry.Logger.GetLevel())

	t.Setenv("LOG_LEVEL", "chatty")
	l = NewFromEnv("hotelpms")
	assert.Equal(t, logrus.InfoLevel, l.entry.Logger.GetLevel())
}

func TestAppNameHook(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, logrus.InfoLevel)
	l.entry.Logger.AddHook(&appNameHook{appName: "hotelpms"})

	l.Error("boom")
	assert.Contains(t, buf.String(), "[hotelpms] boom")
}

func TestToLogrusLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, toLogrusLevel(DebugLevel))
	assert.Equal(t, logrus.WarnLevel, toLogrusLevel(WarnLevel))
	assert.Equal(t, logrus.ErrorLevel, toLogrusLevel(ErrorLevel))
	assert.Equal(t, logrus.InfoLevel, toLogrusLevel(Level(42)))
}
