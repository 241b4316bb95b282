package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/nlhsang/chat-account/application/auth"
	"github.com/nlhsang/chat-account/constant"
	"github.com/nlhsang/chat-account/utils/errors"
)

// AuthMiddleware validates the session cookie on private endpoints. A missing
// token answers 401; a token that is present but expired, tampered with or
// revoked answers 498.
func AuthMiddleware(authApp auth.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			token := accessTokenFromRequest(r)
			if token == "" {
				writeError(w, errors.SetCustomErrorMessage(constant.ErrUnauthorize, "You are not authenticated, please login"))
				return
			}

			accountID, err := authApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrTokenExpired))
				return
			}

			ctx := context.WithValue(r.Context(), constant.AccountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	if strings.HasPrefix(path, "/resetPassword/") {
		return true
	}
	switch path {
	case "/register", "/login", "/forgotPassword", "/loggedIn":
		return true
	}

	return false
}
