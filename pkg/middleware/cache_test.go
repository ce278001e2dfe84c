package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheControl_SetOnGet(t *testing.T) {
	handler := CacheControl(300)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brand-list", nil))

	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
}

func TestCacheControl_SkippedOnPost(t *testing.T) {
	handler := CacheControl(300)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/create-brand", nil))

	assert.Empty(t, rec.Header().Get("Cache-Control"))
}
