package chi_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chiadapter "github.com/haris936hk/EchoNote-sub002/internal/adapters/handlers/http/chi"

	"github.com/stretchr/testify/assert"
)

func TestLoggerMiddleware(t *testing.T) {

	newHandler := func(buf *bytes.Buffer) http.Handler {
		logger := slog.New(slog.NewTextHandler(buf, nil))
		mw := chiadapter.LoggerMiddleware(logger)
		return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("short and stout"))
		}))
	}

	t.Run("logs method, status and bytes written", func(t *testing.T) {
		var buf bytes.Buffer
		h := newHandler(&buf)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/meetings/", nil))

		out := buf.String()
		assert.Contains(t, out, "http_request")
		assert.Contains(t, out, "method=GET")
		assert.Contains(t, out, "path=/api/v1/meetings/")
		assert.Contains(t, out, "status=418")
		assert.Contains(t, out, "bytes=15")
	})

	t.Run("health probes stay out of the log", func(t *testing.T) {
		var buf bytes.Buffer
		h := newHandler(&buf)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Empty(t, buf.String())
	})
}
