package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jaroslavdusek1/metasnap/internal/config"
)

func TestRouterServesHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newRouter(config.Config{LogLevel: "warn", Port: "8080"}, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
