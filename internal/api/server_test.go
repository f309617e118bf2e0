// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/htilssu/demarthology-api/internal/api"
	"github.com/htilssu/demarthology-api/internal/forum/question"
	"github.com/htilssu/demarthology-api/internal/forum/symptom"
	"github.com/htilssu/demarthology-api/internal/users/account"
	"github.com/htilssu/demarthology-api/internal/users/auth"
)

type settings struct{}

func (settings) IsDevelopment() bool      { return true }
func (settings) AllowedOrigins() []string { return nil }
func (settings) Port() string             { return "0" }

type anonymous struct{}

func (anonymous) CurrentUser(*http.Request) (*account.User, error) { return nil, nil }

func newTestServer() http.Handler {
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{CheckDatabase: ok}, discard)
	return api.NewServer(settings{}, discard, anonymous{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(nil, nil, nil, nil)),
		Symptom:   symptom.NewHandler(symptom.NewService(nil, discard)),
		Question:  question.NewHandler(question.NewService(nil, discard)),
	}).Handler()
}

func TestServer_Routes(t *testing.T) {
	server := newTestServer()

	cases := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/api/v1/auth/me", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/logout", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/symptoms", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/questions/pending", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/questions", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.code, recorder.Code)
		})
	}
}

func TestServer_RequestIDAndCORS(t *testing.T) {
	request := httptest.NewRequest(http.MethodOptions, "/api/v1/questions", nil)
	request.Header.Set("Origin", "http://localhost:3000")

	recorder := httptest.NewRecorder()
	newTestServer().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
