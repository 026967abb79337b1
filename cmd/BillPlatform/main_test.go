package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sebuszqo/BillPlatform/internal/auth"
	"github.com/sebuszqo/BillPlatform/internal/config"
	"github.com/sebuszqo/BillPlatform/internal/finance/application"
	"github.com/sebuszqo/BillPlatform/internal/finance/infrastructure"
	"github.com/sebuszqo/BillPlatform/internal/gateway"
	"github.com/sebuszqo/BillPlatform/internal/region"
	"github.com/sebuszqo/BillPlatform/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	users := user.NewMemoryRepository(user.User{ID: "u-1", Email: "a@example.com"})
	userService := user.NewUserService(users)
	categories := infrastructure.NewMemoryCategoryRepository()

	registry := prometheus.NewRegistry()
	handler := gateway.NewHandler(gateway.Services{
		Users:      userService,
		Limits:     user.NewLimitService(users),
		Categories: application.NewCategoryService(categories, userService),
		Bills:      application.NewBillService(infrastructure.NewMemoryBillRepository(categories), nil),
		Regions:    region.NewRegionService(region.NewMemoryRepository(nil, nil)),
	}, gateway.Options{VerifyBillReferences: true, Metrics: gateway.NewMetrics(registry)})

	server := NewServer(handler, nil, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server.RegisterRoutes()

	cfg := &config.Config{RequestTimeout: time.Second}
	return server.Handler(cfg, auth.NewJWTManager("secret", "issuer", "audience"))
}

func TestUnknownRouteIsEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/IndUser/DoesNotExist", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var env gateway.Envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/IndUser/GetAllBill", nil))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `billplatform_gateway_responses_total{code="400",operation="GetAllBill"} 1`)
}

func TestGatewayRejectionIsJSONEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/Test-GetProIDandName", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var env gateway.Envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	assert.Equal(t, http.StatusUnauthorized, env.Code)
}
