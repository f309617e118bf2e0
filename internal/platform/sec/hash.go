// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash is returned by [VerifyPassword] when the stored digest
// is not a usable bcrypt hash.
var ErrMalformedHash = errors.New("sec: malformed password hash")

// HashPassword hashes a plain-text password using the bcrypt algorithm.
// Every call embeds a fresh random salt, so equal inputs give distinct digests.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
// Mismatches and malformed digests both return false.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	ok, _ := VerifyPassword(plainTextPassword, existingHash)
	return ok
}

// VerifyPassword is [CheckPasswordHash] with the failure reason exposed.
// A wrong password yields (false, nil); a corrupt digest yields
// (false, [ErrMalformedHash]).
func VerifyPassword(plainTextPassword, existingHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
