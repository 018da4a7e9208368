package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lexi-api/internal/api/shared"
	"github.com/phrazzld/lexi-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	NewTraceMiddleware(base)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/xp", nil))

	require.Len(t, traceID, 32)
	assert.Equal(t, traceID, rec.Header().Get("X-Trace-ID"))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var handlerEntry, completed map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &handlerEntry))
	require.NoError(t, json.Unmarshal(lines[1], &completed))

	assert.Equal(t, traceID, handlerEntry["trace_id"])
	assert.Equal(t, "request completed", completed["msg"])
	assert.Equal(t, traceID, completed["trace_id"])
	assert.Equal(t, float64(http.StatusTeapot), completed["status"])
	assert.Equal(t, "/api/xp", completed["path"])
}

func TestTraceMiddleware_DistinctIDs(t *testing.T) {
	seen := make(map[string]bool)
	mw := NewTraceMiddleware(nil)
	for range 5 {
		rec := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get("X-Trace-ID")
		assert.False(t, seen[id])
		seen[id] = true
	}
}
