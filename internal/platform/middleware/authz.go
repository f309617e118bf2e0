// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package middleware

import (
	"context"
	"net/http"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/authz"
	"github.com/htilssu/demarthology-api/internal/platform/constants"
	"github.com/htilssu/demarthology-api/internal/platform/ctxutil"
	"github.com/htilssu/demarthology-api/internal/platform/respond"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

// UserResolver hydrates the current user from an inbound request.
//
// Declared here so the middleware does not depend on the auth service.
type UserResolver interface {
	CurrentUser(request *http.Request) (*account.User, error)
}

// Authenticate resolves the caller when an Authorization header is present.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Header present: the [UserResolver] must succeed, otherwise its error
//     (401 for bad sessions) is written and the chain stops.
//  3. The resolved [*account.User] is injected into the request context.
func Authenticate(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get(constants.HeaderAuthorization) == "" {
				next.ServeHTTP(writer, request)
				return
			}

			user, err := resolver.CurrentUser(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if holder := identityHolderFrom(request.Context()); holder != nil {
				holder.userID = user.ID
			}

			ctx := ctxutil.WithCurrentUser(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks anonymous requests with 401.
// Must be registered AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetCurrentUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequirePermission runs the authorization gate for route-level permissions.
//
// Anonymous callers get 401; authenticated callers failing p get 403. The
// check carries no target resource; ownership rules that need the loaded
// entity are enforced by the service.
func RequirePermission(p authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user := ctxutil.GetCurrentUser(request.Context())
			if user == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if err := authz.Authorize(p, authz.For(user)); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Identity reporting

type identityKey struct{}

// identityHolder carries the resolved user id back up to [StructuredLogger].
type identityHolder struct {
	userID string
}

func withIdentityHolder(ctx context.Context, holder *identityHolder) context.Context {
	return context.WithValue(ctx, identityKey{}, holder)
}

func identityHolderFrom(ctx context.Context) *identityHolder {
	holder, _ := ctx.Value(identityKey{}).(*identityHolder)
	return holder
}
