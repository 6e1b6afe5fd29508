package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestNew_Backends(t *testing.T) {
	for _, backend := range []string{BackendSlog, BackendZap, BackendZerolog} {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(backend, "info", &buf)
			require.NoError(t, err)

			ctx := context.Background()
			log.Debug(ctx, "hidden")
			log.With("request_id", "r1").Info(ctx, "shown", "user_id", 7)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1, "debug must be filtered at info level")
			assert.Equal(t, "r1", lines[0]["request_id"])
			assert.EqualValues(t, 7, lines[0]["user_id"])

			// each backend names the message key differently
			msg := lines[0]["msg"]
			if msg == nil {
				msg = lines[0]["message"]
			}
			assert.Equal(t, "shown", msg)
		})
	}
}

func TestNew_DebugLevel(t *testing.T) {
	for _, backend := range []string{BackendSlog, BackendZap, BackendZerolog} {
		var buf bytes.Buffer
		log, err := New(backend, "DEBUG", &buf)
		require.NoError(t, err)
		log.Debug(context.Background(), "dbg")
		assert.Len(t, decodeLines(t, &buf), 1, backend)
	}
}

func TestNew_ErrorLevelDropsWarn(t *testing.T) {
	for _, backend := range []string{BackendSlog, BackendZap, BackendZerolog} {
		var buf bytes.Buffer
		log, err := New(backend, "error", &buf)
		require.NoError(t, err)
		log.Warn(context.Background(), "w")
		log.Error(context.Background(), "e")
		assert.Len(t, decodeLines(t, &buf), 1, backend)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("log4j", "info", &bytes.Buffer{})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	var l Logger = Nop{}
	l.With("a", 1).Error(context.Background(), "x")
}

func TestContextWith_AllBackends(t *testing.T) {
	for _, backend := range []string{BackendSlog, BackendZap, BackendZerolog} {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(backend, "debug", &buf)
			require.NoError(t, err)

			ctx := ContextWith(context.Background(), "request_id", "r9")
			ctx = ContextWith(ctx, "caller", "doc@example.com")
			log.Warn(ctx, "carried", "user_id", 3)
			log.Info(context.Background(), "plain")

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 2)
			assert.Equal(t, "r9", lines[0]["request_id"])
			assert.Equal(t, "doc@example.com", lines[0]["caller"])
			assert.EqualValues(t, 3, lines[0]["user_id"])
			assert.NotContains(t, lines[1], "request_id")
		})
	}
}
