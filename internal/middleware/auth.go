package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const adminKey contextKey = "is_admin"

const authCookieName = "admin_token"

// WithAuth разбирает admin-cookie и помечает контекст запроса.
// Запрос без валидной cookie проходит дальше анонимным — отказ
// остаётся за хендлером (ровно как с user_id в других сервисах).
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err == nil && validAdminToken(cookie.Value, secret) {
				r = r.WithContext(context.WithValue(r.Context(), adminKey, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin сообщает, аутентифицирован ли администратор в этом запросе.
func IsAdmin(ctx context.Context) bool {
	v, ok := ctx.Value(adminKey).(bool)
	return ok && v
}

// SetAdminCookie выписывает подписанную admin-cookie на сутки.
func SetAdminCookie(w http.ResponseWriter, secret string) error {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func validAdminToken(raw, secret string) bool {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return false
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	return ok && claims.Subject == "admin"
}
