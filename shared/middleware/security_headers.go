package middleware

import (
	"net/http"
)

// SecurityHeaders adds the headers a JSON API wants on every response.
// hsts adds Strict-Transport-Security, only set it when served over https.
func SecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "no-referrer")
			// responses are data, never documents
			headers.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			if hsts {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
