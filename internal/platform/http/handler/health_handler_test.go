package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(deps map[string]Pinger) *gin.Engine {
	h := NewHealthHandler(deps)
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	return r
}

var (
	up   = PingerFunc(func(context.Context) error { return nil })
	down = PingerFunc(func(context.Context) error { return errors.New("connection refused") })
)

func TestHealth_GET(t *testing.T) {
	t.Parallel()

	router := setupRouter(map[string]Pinger{"db": up})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, map[string]any{"db": "ok"}, response["checks"])
}

func TestHealth_NoDependencies(t *testing.T) {
	t.Parallel()

	router := setupRouter(map[string]Pinger{"redis": nil})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealth_DependencyDown(t *testing.T) {
	t.Parallel()

	router := setupRouter(map[string]Pinger{"db": up, "redis": down})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"db":"ok","redis":"down"}}`, w.Body.String())
}

func TestHealth_ResponseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		deps           map[string]Pinger
		expectedStatus int
	}{
		{"GET", http.MethodGet, nil, http.StatusOK},
		{"HEAD", http.MethodHead, nil, http.StatusOK},
		{"HEAD down", http.MethodHead, map[string]Pinger{"db": down}, http.StatusServiceUnavailable},
		{"OPTIONS", http.MethodOptions, nil, http.StatusNoContent},
		{"OPTIONS skips checks", http.MethodOptions, map[string]Pinger{"db": down}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			setupRouter(tt.deps).ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.method != http.MethodGet {
				assert.Zero(t, w.Body.Len())
			}
		})
	}
}
