package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/pkg/token"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	capabilitiesKey
)

// Auth проверяет Bearer токен и кладёт в контекст ID пользователя
// и набор прав, вычисленный из роли
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(strings.TrimPrefix(header, "Bearer "), secretKey)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			userID, err := strconv.Atoi(claims.ID)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = context.WithValue(ctx, capabilitiesKey, model.CapabilitiesForRole(claims.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability пропускает запрос только при наличии права в контексте
func RequireCapability(cap model.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caps, ok := CapabilitiesFromContext(r.Context())
			if !ok || !caps.Has(cap) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext возвращает ID пользователя из контекста запроса
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// CapabilitiesFromContext возвращает набор прав из контекста запроса
func CapabilitiesFromContext(ctx context.Context) (model.Capabilities, bool) {
	caps, ok := ctx.Value(capabilitiesKey).(model.Capabilities)
	return caps, ok
}
