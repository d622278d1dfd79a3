package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name        string
		requestID   string
		status      int
		expectLevel string
	}{
		{name: "generated request id", status: http.StatusOK, expectLevel: "level=INFO"},
		{name: "caller request id", requestID: "abc-123", status: http.StatusNotFound, expectLevel: "level=INFO"},
		{name: "server error", status: http.StatusInternalServerError, expectLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			h := Logger(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
			if tt.requestID != "" {
				req.Header.Set(RequestIDHeader, tt.requestID)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			id := rr.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, id)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, id)
			}

			out := buf.String()
			assert.True(t, strings.Contains(out, tt.expectLevel), out)
			assert.Contains(t, out, "request_id="+id)
			assert.Contains(t, out, "path=/api/state")
		})
	}
}
