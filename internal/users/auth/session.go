// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/constants"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
)

// Session extraction failures. Both surface as 401 with the sentinel as cause.
var (
	ErrMissingHeader   = errors.New("auth: authorization header missing")
	ErrMalformedHeader = errors.New("auth: authorization header malformed")
)

const bearerScheme = "bearer"

// SessionProvider extracts the session claims carried by an inbound request.
type SessionProvider interface {
	Session(request *http.Request) (sec.Claims, error)
}

// AccessTokenDecoder verifies access tokens. Implemented by [*sec.TokenCodec].
type AccessTokenDecoder interface {
	DecodeAccessToken(token string) (sec.Claims, error)
}

// BearerSessionProvider reads an "Authorization: Bearer <token>" header and
// decodes the token.
type BearerSessionProvider struct {
	decoder AccessTokenDecoder
}

// NewBearerSessionProvider creates a [BearerSessionProvider].
func NewBearerSessionProvider(decoder AccessTokenDecoder) *BearerSessionProvider {
	return &BearerSessionProvider{decoder: decoder}
}

/*
Session returns the decoded claims of the bearer token.

The header must be exactly "<scheme> <token>": the scheme matches "bearer"
case-insensitively and the two segments are separated by a single space.

Returns:
  - sec.Claims: Verified token claims
  - error: apperr.Unauthorized wrapping [ErrMissingHeader], [ErrMalformedHeader]
    or the codec failure
*/
func (provider *BearerSessionProvider) Session(request *http.Request) (sec.Claims, error) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return nil, apperr.Unauthorized("Authorization header missing").WithCause(ErrMissingHeader)
	}

	segments := strings.Split(header, " ")
	if len(segments) != 2 || !strings.EqualFold(segments[0], bearerScheme) || segments[1] == "" {
		return nil, apperr.Unauthorized("Authorization header must be 'Bearer <token>'").WithCause(ErrMalformedHeader)
	}

	claims, err := provider.decoder.DecodeAccessToken(segments[1])
	if err != nil {
		return nil, tokenError(err)
	}
	return claims, nil
}

// tokenError maps codec failures onto 401 responses.
func tokenError(err error) error {
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.Unauthorized("Token has expired").WithCause(err)
	case errors.Is(err, sec.ErrInvalidTokenType):
		return apperr.Unauthorized("Invalid token type").WithCause(err)
	default:
		return apperr.Unauthorized("Invalid token").WithCause(err)
	}
}
