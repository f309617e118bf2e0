// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Authentication: token scheme and user-facing auth messages.
  - Pagination: page size bounds for list endpoints.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "demarthology-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Authentication

const (
	// TokenType is the token_type reported to clients alongside access tokens.
	TokenType = "bearer"

	MsgInvalidCredentials = "Incorrect email or password"
	MsgForgotPassword     = "If the email exists, a password reset link has been sent"
	MsgPasswordReset      = "Password has been reset successfully"
	MsgLoggedOut          = "Logged out successfully"
	MsgLoggedIn           = "Login successful"
	MsgRegistered         = "Registration successful"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
