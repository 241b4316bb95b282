package transport

import (
	"net/http"
	"time"

	"github.com/nlhsang/chat-account/cmd/config"
	"github.com/nlhsang/chat-account/constant"
)

// setAccessTokenCookie writes the HTTP-only session cookie. In production the
// client is served from another origin, so the cookie needs Secure +
// SameSite=None; in development Lax over plain HTTP.
func setAccessTokenCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	cookie := &http.Cookie{
		Name:     constant.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(cfg.Auth.JWTExpiration),
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

// clearAccessTokenCookie overwrites the cookie with a past expiry.
func clearAccessTokenCookie(w http.ResponseWriter, cfg *config.Config) {
	cookie := &http.Cookie{
		Name:     constant.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

// accessTokenFromRequest prefers the cookie; a bearer header is accepted for
// non-browser clients.
func accessTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(constant.AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
