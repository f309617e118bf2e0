// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htilssu/demarthology-api/internal/api"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func ok(context.Context) error { return nil }

func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, discard)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		name   string
		deps   api.HealthDependencies
		code   int
		status string
	}{
		{"all healthy", api.HealthDependencies{CheckDatabase: ok, CheckCache: ok}, http.StatusOK, "ready"},
		{
			"redis down",
			api.HealthDependencies{CheckDatabase: ok, CheckCache: func(context.Context) error { return errors.New("dial tcp: refused") }},
			http.StatusServiceUnavailable,
			"degraded",
		},
		{"no checks", api.HealthDependencies{}, http.StatusOK, "ready"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tc.deps, discard)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.Equal(t, tc.code, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body["status"])
		})
	}
}
