package logging

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func bufferLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := New("engine", level)
	l.out = log.New(buf, "", 0)
	return l, buf
}

func TestLogger_Format(t *testing.T) {
	l, buf := bufferLogger(LevelInfo)
	l.WithRequestID("rid-1").LogInfof("start", "session_id=%s", "s-1")

	assert.Equal(t, "[info] request_id=rid-1 component=engine operation=start session_id=s-1\n", buf.String())
}

func TestLogger_LevelFilter(t *testing.T) {
	l, buf := bufferLogger(LevelWarn)
	l.LogInfof("tick", "ignored")
	l.LogDebugf("tick", "ignored")
	assert.Empty(t, buf.String())

	l.LogError("tick", errors.New("boom"))
	assert.Contains(t, buf.String(), "[error] component=engine operation=tick error=boom")
}

func TestLogger_FromContext(t *testing.T) {
	l, buf := bufferLogger(LevelInfo)
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))

	l.FromContext(ctx).LogWarnf("pause", "x=%d", 1)
	assert.Contains(t, buf.String(), "request_id=abc")

	buf.Reset()
	l.FromContext(context.Background()).LogWarnf("pause", "x=%d", 1)
	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().LogErrorf("x", "y")
		var nilLogger *Logger
		nilLogger.LogInfof("x", "y")
	})
}
