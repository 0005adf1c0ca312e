// Package requesttime pins one "now" per request so that createdAt and
// updatedAt of a single write agree.
package requesttime

import (
	"net/http"
	"time"

	"partyhub/pkg/requestcontext"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
