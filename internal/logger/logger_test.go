package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	l := NewWithWriter(&buf, "debug", loc)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("component", "test").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test", entry["component"])

	ts, err := time.Parse(time.RFC3339Nano, entry["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	_, want := time.Now().In(loc).Zone()
	assert.Equal(t, want, offset)
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, "chatty", nil)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
