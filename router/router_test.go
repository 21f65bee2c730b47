package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"budget/config"

	"github.com/stretchr/testify/assert"
)

func testConfig(origins ...string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test", CORSOrigins: origins},
	}
}

func TestSetupRouter_Health(t *testing.T) {
	r := SetupRouter(testConfig("*"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestSetupRouter_Routes(t *testing.T) {
	r := SetupRouter(testConfig())

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/categories",
		"POST /api/v1/categories",
		"PUT /api/v1/categories/:id",
		"DELETE /api/v1/categories/:id",
		"GET /api/v1/expenses",
		"POST /api/v1/expenses",
		"GET /api/v1/expenses/:id",
		"PUT /api/v1/expenses/:id",
		"DELETE /api/v1/expenses/:id",
		"GET /api/v1/dashboard",
		"GET /swagger/*any",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	r := SetupRouter(testConfig("https://budget.example.com"))

	req := httptest.NewRequest("OPTIONS", "/api/v1/categories", nil)
	req.Header.Set("Origin", "https://budget.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://budget.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, CORSConfig(nil).AllowAllOrigins)
	assert.True(t, CORSConfig([]string{"https://a.example", "*"}).AllowAllOrigins)

	cc := CORSConfig([]string{"https://a.example"})
	assert.False(t, cc.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example"}, cc.AllowOrigins)
	assert.True(t, cc.AllowCredentials)
}
