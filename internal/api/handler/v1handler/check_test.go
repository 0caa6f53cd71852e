package v1handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"urlcheck/internal/api/handler/v1handler"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/serrors"

	"github.com/stretchr/testify/require"
)

// fakeChecker records the last call and returns canned values.
type fakeChecker struct {
	lastURL   string
	lastForce bool
	res       *domain.CheckResult
	err       error
}

func (f *fakeChecker) Check(_ context.Context, URL string, forceRecheck bool) (*domain.CheckResult, error) {
	f.lastURL = URL
	f.lastForce = forceRecheck

	return f.res, f.err
}

func newHandler(fc *fakeChecker) *v1handler.Handler {
	logger.Setup(logger.DevelopmentEnvironment)

	return v1handler.New(v1handler.Deps{Checker: fc})
}

func TestCreateCheck(t *testing.T) {
	fc := &fakeChecker{res: &domain.CheckResult{
		URL:       "https://example.com",
		URLHash:   "abc",
		Status:    domain.StatusSafe,
		AIOpinion: "parece seguro",
		LastCheck: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		FromCache: false,
	}}
	h := newHandler(fc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/checks",
		strings.NewReader(`{"url":"example.com","force_recheck":true}`))
	h.CreateCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "example.com", fc.lastURL)
	require.True(t, fc.lastForce)
	require.Contains(t, rec.Body.String(), `"status":"safe"`)
	require.Contains(t, rec.Body.String(), `"url":"https://example.com"`)
}

func TestCreateCheck_InvalidBody(t *testing.T) {
	h := newHandler(&fakeChecker{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/checks", strings.NewReader("{not json"))
	h.CreateCheck(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid request body")
}

func TestCreateCheck_BadRequestFromChecker(t *testing.T) {
	h := newHandler(&fakeChecker{err: serrors.With(serrors.ErrBadRequest, "URL is required")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/checks", strings.NewReader(`{"url":""}`))
	h.CreateCheck(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "URL is required")
}

func TestCreateCheck_InternalErrorIsOpaque(t *testing.T) {
	h := newHandler(&fakeChecker{err: errors.New("pool exhausted")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/checks", strings.NewReader(`{"url":"example.com"}`))
	h.CreateCheck(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "pool exhausted")
	require.Contains(t, rec.Body.String(), "internal error")
}
