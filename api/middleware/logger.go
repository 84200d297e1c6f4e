// Package middleware provides HTTP middleware for the nucmer API.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Logger logs one line per request with its status, size and duration.
func Logger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				entry := log.WithFields(logrus.Fields{
					"method":   r.Method,
					"path":     r.URL.Path,
					"status":   status,
					"bytes":    ww.BytesWritten(),
					"duration": time.Since(start),
				})
				if id := chimiddleware.GetReqID(r.Context()); id != "" {
					entry = entry.WithField("request_id", id)
				}

				if status >= http.StatusInternalServerError {
					entry.Error("request failed")
				} else {
					entry.Info("request")
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
