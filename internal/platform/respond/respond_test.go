// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/respond"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, apperr.Forbidden())

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, "Insufficient permissions", body["detail"])
	assert.NotContains(t, body, "details")
}

/*
TestError_HidesInternalCause verifies raw error text never reaches the client.
*/
func TestError_HidesInternalCause(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: connection refused to 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "10.0.0.3")
	assert.Equal(t, "INTERNAL_ERROR", decode(t, recorder)["code"])
}

func TestError_ValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "email", Message: "This field is required"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	details, ok := decode(t, recorder)["details"].([]any)
	require.True(t, ok)
	assert.Len(t, details, 1)
}

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.OK(recorder, map[string]string{"name": "fever"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	body := decode(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"name": "fever"}, body["data"])
}

func TestMessage_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Message(recorder, "done")

	body := decode(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
}
