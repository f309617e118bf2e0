// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/ctxutil"
	"github.com/htilssu/demarthology-api/internal/platform/validate"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

// DecodeJSON reads the request body and decodes it into target.
// Any decoding failure is reported as [validate.ErrInvalidJSON].
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
CurrentUser returns the user resolved by the auth middleware, or nil on
public routes.
*/
func CurrentUser(request *http.Request) *account.User {
	return ctxutil.GetCurrentUser(request.Context())
}

/*
RequiredUser ensures the request is authenticated and returns its user.

Returns:
  - *account.User: The resolved current user
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredUser(request *http.Request) (*account.User, error) {
	user := ctxutil.GetCurrentUser(request.Context())
	if user == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return user, nil
}
