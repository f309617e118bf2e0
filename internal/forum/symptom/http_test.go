// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package symptom_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/htilssu/demarthology-api/internal/forum/symptom"
	"github.com/htilssu/demarthology-api/internal/platform/ctxutil"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

// asUser injects user the way the Authenticate middleware would.
func asUser(user *account.User, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user != nil {
			r = r.WithContext(ctxutil.WithCurrentUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func send(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

func TestHandler_CurationRequiresModeration(t *testing.T) {
	cases := []struct {
		name   string
		user   *account.User
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", &account.User{ID: "u1", Role: sec.RoleUser}, http.StatusForbidden},
		{"moderator", &account.User{ID: "u2", Role: sec.RoleModerator}, http.StatusCreated},
		{"admin", &account.User{ID: "u3", Role: sec.RoleAdmin}, http.StatusCreated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			router := asUser(tc.user, symptom.NewHandler(newService(repo)).Routes())

			recorder := send(router, http.MethodPost, "/", `{"name":"Psoriasis"}`)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}

func TestHandler_ListIsPublic(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything, symptom.Filter{Query: "ac"}, 5, 5).
		Return([]*symptom.Symptom{{ID: eczemaID, Name: "Acne", Slug: "acne"}}, 6, nil)
	router := symptom.NewHandler(newService(repo)).Routes()

	recorder := send(router, http.MethodGet, "/?q=ac&page=2&limit=5", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    []symptom.Symptom `json:"data"`
		Meta    struct {
			Page       int `json:"page"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 2, body.Meta.TotalPages)
}

func TestHandler_Delete(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Delete", mock.Anything, eczemaID).Return(nil)
	repo.On("Delete", mock.Anything, "gone").Return(symptom.ErrNotFound)
	admin := &account.User{ID: "u3", Role: sec.RoleAdmin}
	router := asUser(admin, symptom.NewHandler(newService(repo)).Routes())

	recorder := send(router, http.MethodDelete, "/"+eczemaID, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), symptom.MsgDeleted)

	assert.Equal(t, http.StatusNotFound, send(router, http.MethodDelete, "/gone", "").Code)
}
