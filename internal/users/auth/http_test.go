// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/constants"
	"github.com/htilssu/demarthology-api/internal/platform/middleware"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/auth"
)

// newRouter mounts the auth routes behind the identity middleware, as the API server does.
func newRouter(f *fixture) http.Handler {
	resolver := auth.NewCurrentUserResolver(auth.NewBearerSessionProvider(f.codec), f.users)
	return middleware.Authenticate(resolver)(auth.NewHandler(f.svc).Routes())
}

func do(handler http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestHandler_Login(t *testing.T) {
	f := newFixture(t)
	f.users.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(t, sec.RoleUser), nil)

	recorder := do(newRouter(f), http.MethodPost, "/login", `{"email":"a@b.com","password":"P@ssw0rd1"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, constants.MsgLoggedIn, body["message"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, map[string]any{
		"email":      testEmail,
		"first_name": "An",
		"last_name":  "Nguyen",
		"role":       "user",
	}, body["user"])

	claims, err := f.codec.DecodeAccessToken(body["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, testEmail, claims[sec.ClaimEmail])
}

func TestHandler_LoginFailureShape(t *testing.T) {
	f := newFixture(t)
	f.users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, auth.ErrNotFound)

	recorder := do(newRouter(f), http.MethodPost, "/login", `{"email":"ghost@nowhere.com","password":"whatever1"}`, "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, apperr.CodeUnauthorized, body["code"])
	assert.Equal(t, constants.MsgInvalidCredentials, body["detail"])
}

func TestHandler_InvalidJSON(t *testing.T) {
	f := newFixture(t)

	recorder := do(newRouter(f), http.MethodPost, "/register", `{"email":`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, apperr.CodeValidation, decodeBody(t, recorder)["code"])
}

func TestHandler_Register(t *testing.T) {
	f := newFixture(t)
	f.users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	f.roles.On("FindByName", mock.Anything, "user").Return(userRole, nil)
	f.users.On("Save", mock.Anything, mock.Anything).Return(nil, nil)

	payload := `{"email":"new@example.com","password":"P@ssw0rd1","confirm_password":"P@ssw0rd1",` +
		`"first_name":"Binh","last_name":"Tran","dob":"1999-12-31"}`
	recorder := do(newRouter(f), http.MethodPost, "/register", payload, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, constants.MsgRegistered, body["message"])
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "new@example.com", body["user"].(map[string]any)["email"])
}

func TestHandler_ForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture(t)
	f.users.On("FindByEmail", mock.Anything, "ghost@nowhere.com").Return(nil, auth.ErrNotFound)

	recorder := do(newRouter(f), http.MethodPost, "/forgot-password", `{"email":"ghost@nowhere.com"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, map[string]any{
		"success": true,
		"message": "If the email exists, a password reset link has been sent",
	}, decodeBody(t, recorder))
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ResetPassword(t *testing.T) {
	f := newFixture(t)
	f.users.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(t, sec.RoleUser), nil)
	f.users.On("Save", mock.Anything, mock.Anything).Return(nil, nil)

	token, err := f.codec.IssueResetToken(testEmail)
	require.NoError(t, err)

	payload := `{"token":"` + token + `","new_password":"N3wSecret!","confirm_new_password":"N3wSecret!"}`
	recorder := do(newRouter(f), http.MethodPost, "/reset-password", payload, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, constants.MsgPasswordReset, decodeBody(t, recorder)["message"])
}

func TestHandler_LogoutAndMe(t *testing.T) {
	f := newFixture(t)
	f.users.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(t, sec.RoleAdmin), nil)
	router := newRouter(f)

	t.Run("anonymous", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/logout", "", "").Code)
		assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/me", "", "").Code)
	})

	token, err := f.codec.IssueAccessToken(sec.Claims{sec.ClaimEmail: testEmail})
	require.NoError(t, err)

	t.Run("logout", func(t *testing.T) {
		recorder := do(router, http.MethodPost, "/logout", "", token)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, constants.MsgLoggedOut, decodeBody(t, recorder)["message"])
	})

	t.Run("me", func(t *testing.T) {
		recorder := do(router, http.MethodGet, "/me", "", token)
		require.Equal(t, http.StatusOK, recorder.Code)

		data := decodeBody(t, recorder)["data"].(map[string]any)
		assert.Equal(t, testEmail, data["email"])
		assert.Equal(t, "admin", data["role"])
		assert.NotContains(t, data, "password_hash")
	})

	t.Run("invalid token", func(t *testing.T) {
		recorder := do(router, http.MethodGet, "/me", "", token+"x")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Invalid token", decodeBody(t, recorder)["detail"])
	})
}
