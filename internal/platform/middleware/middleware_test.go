// Copyright (c) 2026 ClaimPoint. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claimpoint/claimpoint/internal/platform/middleware"
)

// corsConfig is a minimal [middleware.AppConfig] for CORS tests.
type corsConfig struct {
	development  bool
	extraOrigins []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.extraOrigins }

func serveCORS(cfg corsConfig, origin string) *httptest.ResponseRecorder {
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	if origin != "" {
		request.Header.Set("Origin", origin)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestCORS(t *testing.T) {
	production := corsConfig{extraOrigins: []string{"https://staging.example.net"}}

	testCases := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{
			name:    "development allows any origin",
			cfg:     corsConfig{development: true},
			origin:  "http://localhost:5173",
			allowed: true,
		},
		{
			name:    "production allows claimpoint.app",
			cfg:     production,
			origin:  "https://www.claimpoint.app",
			allowed: true,
		},
		{
			name:    "production allows configured extra origin",
			cfg:     production,
			origin:  "https://staging.example.net",
			allowed: true,
		},
		{
			name:    "production blocks unknown origin",
			cfg:     production,
			origin:  "https://evil.example.com",
			allowed: false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := serveCORS(testCase.cfg, testCase.origin)

			allowHeader := recorder.Header().Get("Access-Control-Allow-Origin")
			if testCase.allowed {
				assert.Equal(t, testCase.origin, allowHeader)
			} else {
				assert.Empty(t, allowHeader)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS(corsConfig{development: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("pre-flight request must not reach the handler")
	}))

	request := httptest.NewRequest(http.MethodOptions, "/api/v1/items", nil)
	request.Header.Set("Origin", "http://localhost:5173")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
