package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"urlcheck/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// AuthSubjectKey is the context key under which the authenticated token
	// subject is stored.
	AuthSubjectKey CtxKey = "AuthSubject"

	bearerPrefix = "Bearer "
)

// WithAuth returns a middleware that enforces RS256 bearer tokens verified
// against the given PEM-encoded RSA public key. An empty key disables
// authentication and the middleware passes every request through.
func WithAuth(publicKeyPEM string) (func(http.Handler) http.Handler, error) {
	if publicKeyPEM == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("could not parse public key: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				unauthorized(w)

				return
			}

			claims := jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, bearerPrefix), &claims,
				func(*jwt.Token) (any, error) { return key, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Debug(r.Context(), "rejected bearer token", zap.Error(err))
				unauthorized(w)

				return
			}

			ctx := context.WithValue(r.Context(), AuthSubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
