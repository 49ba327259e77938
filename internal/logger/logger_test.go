package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	defer Setup(false)

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Equal(t, "debug", Level())

	Setup(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	saved := Output
	Output = &buf
	defer func() { Output = saved }()

	l := NewWithConfig("test", log.InfoLevel, false, false, log.TextFormatter)
	l.Info("hello")
	l.Debug("hidden")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "test")
	assert.NotContains(t, buf.String(), "hidden")
}
