package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest caps request bodies at maxBodyBytes (no cap when <= 0), then
// drains and closes the body once the handler returns so the connection can be reused.
// A handler reading past the cap gets an *http.MaxBytesError from its decoder.
func DrainAndCloseRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && maxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
