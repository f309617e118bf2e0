// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer through narrow interfaces declared by the consumers.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token failure kinds. Callers map them onto the HTTP taxonomy.
var (
	ErrTokenExpired     = errors.New("sec: token expired")
	ErrTokenInvalid     = errors.New("sec: token invalid")
	ErrInvalidTokenType = errors.New("sec: invalid token type")
)

// Claim names shared by the issuer and the consumers.
const (
	ClaimEmail     = "email"
	ClaimUserID    = "user_id"
	ClaimSubject   = "sub"
	ClaimType      = "type"
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"

	TokenTypeAccess = "access"
	TokenTypeReset  = "reset"
)

// Claims is the decoded key-value payload of a signed token.
type Claims map[string]any

// String returns the claim under key when it is a non-empty string.
func (c Claims) String(key string) (string, bool) {
	value, ok := c[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// TokenConfig holds the immutable signing parameters of a [TokenCodec].
type TokenConfig struct {
	// Secret is the HMAC key shared by issuer and verifier.
	Secret string
	// Algorithm is a fixed JWS identifier, e.g. "HS256".
	Algorithm string
	// AccessTTL is the lifetime of access tokens.
	AccessTTL time.Duration
	// ResetTTL is the lifetime of password reset tokens. Must be shorter than AccessTTL.
	ResetTTL time.Duration
}

// Validate checks the invariants of the signing configuration.
func (cfg TokenConfig) Validate() error {
	if cfg.Secret == "" {
		return errors.New("sec: token secret is empty")
	}
	if _, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("sec: unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.AccessTTL <= 0 || cfg.ResetTTL <= 0 {
		return errors.New("sec: token lifetimes must be positive")
	}
	if cfg.ResetTTL >= cfg.AccessTTL {
		return fmt.Errorf("sec: reset token ttl %s must be shorter than access token ttl %s", cfg.ResetTTL, cfg.AccessTTL)
	}
	return nil
}

// TokenCodec issues and verifies HMAC-signed, expiring JWTs.
//
// It is safe for concurrent use: all fields are read-only after construction.
type TokenCodec struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
	resetTTL  time.Duration
	now       func() time.Time
}

// CodecOption customizes a [TokenCodec].
type CodecOption func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(codec *TokenCodec) { codec.now = now }
}

// NewTokenCodec validates cfg and constructs a [TokenCodec].
func NewTokenCodec(cfg TokenConfig, opts ...CodecOption) (*TokenCodec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	codec := &TokenCodec{
		secret:    []byte(cfg.Secret),
		method:    jwt.GetSigningMethod(cfg.Algorithm),
		accessTTL: cfg.AccessTTL,
		resetTTL:  cfg.ResetTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(codec)
	}
	return codec, nil
}

// AccessTTL returns the configured access token lifetime.
func (codec *TokenCodec) AccessTTL() time.Duration { return codec.accessTTL }

// # Access Tokens

// IssueAccessToken signs claims together with iat, exp and the access type marker.
// Caller claims are copied; the argument map is not modified.
func (codec *TokenCodec) IssueAccessToken(claims Claims) (string, error) {
	payload := make(jwt.MapClaims, len(claims)+3)
	for key, value := range claims {
		payload[key] = value
	}
	payload[ClaimType] = TokenTypeAccess
	return codec.sign(payload, codec.accessTTL)
}

// DecodeAccessToken verifies the signature and expiry of an access token.
//
// Tokens without a type marker are accepted; tokens explicitly marked as
// another kind (e.g. reset) are rejected with [ErrInvalidTokenType].
func (codec *TokenCodec) DecodeAccessToken(tokenString string) (Claims, error) {
	claims, err := codec.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if kind, present := claims[ClaimType]; present && kind != TokenTypeAccess {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// # Reset Tokens

// IssueResetToken creates a short-lived token carrying only the target email.
func (codec *TokenCodec) IssueResetToken(email string) (string, error) {
	return codec.sign(jwt.MapClaims{
		ClaimEmail: email,
		ClaimType:  TokenTypeReset,
	}, codec.resetTTL)
}

// DecodeResetToken verifies a reset token and returns the embedded email.
// A missing or different type marker fails with [ErrInvalidTokenType].
func (codec *TokenCodec) DecodeResetToken(tokenString string) (string, error) {
	claims, err := codec.parse(tokenString)
	if err != nil {
		return "", err
	}

	if kind, _ := claims[ClaimType].(string); kind != TokenTypeReset {
		return "", ErrInvalidTokenType
	}

	email, ok := claims.String(ClaimEmail)
	if !ok {
		return "", ErrTokenInvalid
	}
	return email, nil
}

// # Internals

func (codec *TokenCodec) sign(payload jwt.MapClaims, ttl time.Duration) (string, error) {
	issuedAt := codec.now()
	payload[ClaimIssuedAt] = issuedAt.Unix()
	payload[ClaimExpiresAt] = issuedAt.Add(ttl).Unix()

	signed, err := jwt.NewWithClaims(codec.method, payload).SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signed, nil
}

// parse checks signature and algorithm through the library and expiry against
// the codec clock. A token is expired from its exp instant onwards.
func (codec *TokenCodec) parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	},
		jwt.WithValidMethods([]string{codec.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	expiresAt, err := mapClaims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, ErrTokenInvalid
	}
	if !codec.now().Before(expiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return Claims(mapClaims), nil
}
