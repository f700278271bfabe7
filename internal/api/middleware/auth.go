package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware requires a valid HS256 bearer token on the wrapped
// handler. An empty secret disables the check entirely, which keeps local
// development friction-free; production deploys always set the secret.
type AuthMiddleware struct {
	Secret []byte
	Next   http.Handler
}

func (m AuthMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.Next == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(m.Secret) == 0 {
		m.Next.ServeHTTP(w, r)
		return
	}

	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(authz, "Bearer ") {
		unauthorized(w, "missing bearer token")
		return
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	if tokenString == "" {
		unauthorized(w, "empty bearer token")
		return
	}

	_, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		unauthorized(w, "invalid token")
		return
	}

	m.Next.ServeHTTP(w, r)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","message":"` + msg + `"}`))
}
