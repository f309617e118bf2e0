// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package account defines the identity record shared by the authentication,
authorization and forum domains.

# Architecture

  - Entities: User (identity record), Summary (wire DTO), RoleRecord.
  - Domain: This package is a leaf. It depends only on platform/sec for the
    closed role set, so every other layer can import it without cycles.
*/
package account

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/htilssu/demarthology-api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the forum.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  time.Time `json:"dob"`
	Role         sec.Role  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary is the public projection of a [User] returned by auth endpoints.
type Summary struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      sec.Role `json:"role"`
}

// Summary projects the user onto its wire-safe shape.
func (u *User) Summary() Summary {
	return Summary{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// RoleRecord is a row of the role catalogue.
type RoleRecord struct {
	ID          string    `json:"id"`
	Name        sec.Role  `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Normalization

var domainCaser = cases.Lower(language.Und)

// NormalizeEmail trims surrounding whitespace and lower-cases the domain part.
// The local part is preserved as typed since mailbox names may be case-sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + domainCaser.String(email[at+1:])
}
