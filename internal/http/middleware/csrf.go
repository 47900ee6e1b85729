package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

type contextKey string

// CSRFTokenKey carries the current token in the request context.
const CSRFTokenKey contextKey = "csrf_token"

const (
	// CSRFCookieName is the double-submit cookie.
	CSRFCookieName = "csrf_token"
	// CSRFFieldName is the hidden form field the token is echoed in.
	CSRFFieldName = "csrf_token"
	// CSRFHeaderName is accepted instead of the form field.
	CSRFHeaderName = "X-CSRF-Token"
)

// GenerateToken returns 32 random bytes, hex encoded.
func GenerateToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// CSRFTokenFromContext returns the token injected by CSRF.
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

// CSRF protects the HTML forms with a double-submit cookie. A token is issued
// on first visit; every POST must echo it in the form body or header.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(CSRFCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				token = GenerateToken()
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if r.Method == http.MethodPost {
				sent := r.Header.Get(CSRFHeaderName)
				if sent == "" {
					sent = r.PostFormValue(CSRFFieldName)
				}
				if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
					http.Error(w, "invalid CSRF token", http.StatusForbidden)
					return
				}
			}

			ctx := context.WithValue(r.Context(), CSRFTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
