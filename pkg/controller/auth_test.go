package controller_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"urlcheck/pkg/controller"
	"urlcheck/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// helper to generate an RSA key pair and return the private key and PEM-encoded public key.
func genRSAKeys(tb testing.TB) (*rsa.PrivateKey, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err, "failed to generate RSA key")
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err, "failed to marshal public key")
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	return priv, string(pubPEM)
}

func signJWTRS256(tb testing.TB, priv *rsa.PrivateKey, sub string, issuedAt time.Time, exp time.Time) string {
	tb.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(priv)
	require.NoError(tb, err, "failed to sign token")

	return signed
}

// echoSubject records whether the handler ran and which subject it saw.
func echoSubject(ran *bool, subject *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*ran = true
		if s, ok := r.Context().Value(controller.AuthSubjectKey).(string); ok {
			*subject = s
		}
	})
}

func TestWithAuth_Disabled(t *testing.T) {
	mw, err := controller.WithAuth("")
	require.NoError(t, err)

	var ran bool
	var subject string
	rec := httptest.NewRecorder()
	mw(echoSubject(&ran, &subject)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ran, "disabled auth must pass requests through")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWithAuth_InvalidPublicKey(t *testing.T) {
	_, err := controller.WithAuth("not a pem key")
	require.Error(t, err)
}

func TestWithAuth_ValidToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	mw, err := controller.WithAuth(pubPEM)
	require.NoError(t, err)

	now := time.Now()
	tkn := signJWTRS256(t, priv, "user-1", now, now.Add(time.Hour))

	var ran bool
	var subject string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tkn)
	mw(echoSubject(&ran, &subject)).ServeHTTP(rec, req)

	require.True(t, ran)
	require.Equal(t, "user-1", subject)
}

func TestWithAuth_Rejections(t *testing.T) {
	// initialize default logger to avoid nil pointer in middleware
	logger.Setup(logger.DevelopmentEnvironment)

	priv, pubPEM := genRSAKeys(t)
	privOther, _ := genRSAKeys(t)
	mw, err := controller.WithAuth(pubPEM)
	require.NoError(t, err)

	now := time.Now()
	hsClaims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	hsToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, hsClaims).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer token", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong key", header: "Bearer " + signJWTRS256(t, privOther, "user-1", now, now.Add(time.Hour))},
		{name: "expired", header: "Bearer " + signJWTRS256(t, priv, "user-1", now.Add(-2*time.Hour), now.Add(-time.Hour))},
		{name: "wrong algorithm", header: "Bearer " + hsToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ran bool
			var subject string
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			mw(echoSubject(&ran, &subject)).ServeHTTP(rec, req)

			require.False(t, ran, "handler must not run")
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}
