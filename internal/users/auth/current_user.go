// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

// Resolution failures. Both surface as 401 with the sentinel as cause.
var (
	ErrMissingEmailClaim = errors.New("auth: session has no email claim")
	ErrUserNotFound      = errors.New("auth: session user not found")
)

// UserFinder is the read side of [UserRepository] the resolver needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*account.User, error)
}

// CurrentUserResolver hydrates the user behind a request's session.
// Results are never cached; every call performs one lookup.
type CurrentUserResolver struct {
	sessions SessionProvider
	users    UserFinder
}

// NewCurrentUserResolver creates a [CurrentUserResolver].
func NewCurrentUserResolver(sessions SessionProvider, users UserFinder) *CurrentUserResolver {
	return &CurrentUserResolver{sessions: sessions, users: users}
}

/*
CurrentUser resolves the request's session to an active account.

Steps run strictly in order: session claims, email claim, lookup by email.
Inactive accounts are reported as not found.

Returns:
  - *account.User: The resolved user
  - error: apperr.Unauthorized (session, [ErrMissingEmailClaim], [ErrUserNotFound])
    or apperr.Internal for storage failures
*/
func (resolver *CurrentUserResolver) CurrentUser(request *http.Request) (*account.User, error) {
	claims, err := resolver.sessions.Session(request)
	if err != nil {
		return nil, err
	}

	email, ok := claims.String(sec.ClaimEmail)
	if !ok {
		return nil, apperr.Unauthorized("Token is missing the email claim").WithCause(ErrMissingEmailClaim)
	}

	user, err := resolver.users.FindByEmail(request.Context(), account.NormalizeEmail(email))
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, apperr.Unauthorized("User not found").WithCause(ErrUserNotFound)
	case err != nil:
		return nil, apperr.Internal(err)
	case !user.IsActive:
		return nil, apperr.Unauthorized("User not found").WithCause(ErrUserNotFound)
	}

	return user, nil
}
