// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
)

/*
TestAppError_StatusMapping pins every taxonomy constructor to its HTTP status.
*/
func TestAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"unauthorized", apperr.Unauthorized("x"), apperr.CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden(), apperr.CodeForbidden, http.StatusForbidden},
		{"conflict", apperr.Conflict("x"), apperr.CodeConflict, http.StatusConflict},
		{"not_found", apperr.NotFound("User"), apperr.CodeNotFound, http.StatusNotFound},
		{"invalid", apperr.Invalid("x"), apperr.CodeInvalid, http.StatusBadRequest},
		{"validation", apperr.ValidationError("x"), apperr.CodeValidation, http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("db down")), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestForbidden_FixedMessage(t *testing.T) {
	assert.Equal(t, "Insufficient permissions", apperr.Forbidden().Error())
}

func TestInternal_HidesCause(t *testing.T) {
	err := apperr.Internal(errors.New("connection refused on 10.0.0.3"))
	assert.NotContains(t, err.Error(), "10.0.0.3")
}

/*
TestWithCause verifies sentinel matching through the AppError chain and
that the original value is left untouched.
*/
func TestWithCause(t *testing.T) {
	sentinel := errors.New("missing header")
	base := apperr.Unauthorized("Authorization header missing")

	wrapped := base.WithCause(sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.Nil(t, base.Cause)

	outer := fmt.Errorf("handler: %w", wrapped)
	require.True(t, apperr.IsAppError(outer))
	assert.True(t, apperr.HasCode(outer, apperr.CodeUnauthorized))
	assert.ErrorIs(t, outer, sentinel)
}

func TestAs_NotAppError(t *testing.T) {
	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeInternal))
}
