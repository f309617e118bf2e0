// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/htilssu/demarthology-api/internal/platform/ctxkey"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity

// WithCurrentUser returns a new context carrying the resolved user.
func WithCurrentUser(ctx context.Context, user *account.User) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetCurrentUser retrieves the [*account.User] placed by the auth middleware.
// Returns nil on public routes.
func GetCurrentUser(ctx context.Context) *account.User {
	user, ok := ctx.Value(ctxkey.KeyUser).(*account.User)
	if !ok {
		return nil
	}
	return user
}
