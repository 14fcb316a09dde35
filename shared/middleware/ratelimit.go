package middleware

import (
	"net/http"

	"github.com/itchan-dev/forum/shared/middleware/ratelimiter"
	"github.com/itchan-dev/forum/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteError(w, r, err)
				return
			}
			if !rl.Allow(identity) {
				utils.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Rate limit exceeded, try again later"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ByIP identifies callers by client ip.
func ByIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}
