package middleware

import "net/http"

// HTMX records whether the request came from the widget's htmx controls.
// Fragment handlers and error responses downstream shape their output on
// this flag.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithHTMX(r.Context(), r.Header.Get("HX-Request") == "true")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
