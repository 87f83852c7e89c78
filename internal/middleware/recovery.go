package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/evolvx/internal/telemetry/metrics"
	"github.com/2beens/evolvx/pkg"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 and counts it. A panic after the
// handler already wrote its header only gets logged.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			resp := &responseWriter{ResponseWriter: respWriter, statusCode: http.StatusOK}
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				log.WithFields(log.Fields{
					"route":  routeTemplate(req),
					"method": req.Method,
				}).Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				if !resp.wroteHeader {
					pkg.WriteJSONError(resp, "internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(resp, req)
		})
	}
}
