package middleware

import "net/http"

// LimitBytes caps the request body size. Reads past the limit fail inside
// the handler, which multipart parsing reports as a bad request. A limit
// of zero or less leaves the body unlimited.
func LimitBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
