package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	tests := []struct {
		name   string
		status int
		level  logrus.Level
	}{
		{"ok", 0, logrus.InfoLevel},
		{"client error", http.StatusBadRequest, logrus.InfoLevel},
		{"server error", http.StatusInternalServerError, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()
			h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte("body"))
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, "/health", entry.Data["path"])
			assert.Equal(t, 4, entry.Data["bytes"])

			want := tt.status
			if want == 0 {
				want = http.StatusOK
			}
			assert.Equal(t, want, entry.Data["status"])
		})
	}
}

func TestLoggerRequestID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := chimiddleware.RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, hook.LastEntry())
	assert.NotEmpty(t, hook.LastEntry().Data["request_id"])
}
