package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// slowRequestThreshold is where a request gets logged at info instead of trace.
const slowRequestThreshold = time.Second

// LogRequest logs every request at trace level. Server errors are logged as warnings
// and slow requests at info level.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r)

			took := time.Since(start)
			entry := log.WithFields(log.Fields{
				"method":   r.Method,
				"route":    routeTemplate(r),
				"path":     r.URL.Path,
				"status":   resp.statusCode,
				"duration": took.String(),
				"ua":       r.Header.Get("User-Agent"),
			})
			switch {
			case resp.statusCode >= http.StatusInternalServerError:
				entry.Warn(" ====> request failed")
			case took >= slowRequestThreshold:
				entry.Info(" ====> slow request")
			default:
				entry.Trace(" ====> request")
			}
		})
	}
}
