package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/utils"
)

// Resolver maps a bearer token to the user it was issued for.
type Resolver interface {
	Resolve(token string) (domain.UserId, error)
}

type key int

const userIdKey key = 0

type Auth struct {
	resolver Resolver
}

func NewAuth(resolver Resolver) *Auth {
	return &Auth{resolver: resolver}
}

// NeedAuth rejects requests without a resolvable "Authorization: Bearer"
// header with 403 and puts the actor's id in the request context.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || token == "" {
				utils.WriteError(w, r, errors.Access("Missing authorization token"))
				return
			}
			userId, err := a.resolver.Resolve(token)
			if err != nil {
				utils.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserId(r.Context(), userId)))
		})
	}
}

func WithUserId(ctx context.Context, userId domain.UserId) context.Context {
	return context.WithValue(ctx, userIdKey, userId)
}

// GetUserIdFromContext returns the actor set by NeedAuth.
func GetUserIdFromContext(r *http.Request) (domain.UserId, bool) {
	userId, ok := r.Context().Value(userIdKey).(domain.UserId)
	return userId, ok
}
