package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("panic", fmt.Sprint(err)).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("[Recovery] Panic recovered")

				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `<!DOCTYPE html><html><body><h2>Something went wrong</h2>`+
					`<p>The request could not be completed. <a href="/">Back to the front desk</a></p></body></html>`)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
