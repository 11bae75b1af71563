package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New("module", "test")
	l.SetHandler(StreamHandler(&buf, TerminalFormat(false)))

	l.Info("hello", "n", 7)

	out := buf.String()
	require.Contains(t, out, "INFO")
	require.Contains(t, out, "hello")
	require.Contains(t, out, "module=test")
	require.Contains(t, out, "n=7")
}

func TestLvlFilterHandlerDropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetHandler(LvlFilterHandler(LvlWarn, StreamHandler(&buf, TerminalFormat(false))))

	l.Debug("should be dropped")
	l.Warn("should appear")

	out := buf.String()
	require.False(t, strings.Contains(out, "should be dropped"))
	require.True(t, strings.Contains(out, "should appear"))
}
