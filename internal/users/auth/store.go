// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth

import (
	"context"
	"errors"

	"github.com/htilssu/demarthology-api/internal/users/account"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("auth: record not found")

// # User Data Access

// UserRepository is the credential store consumed by the auth core.
type UserRepository interface {

	/*
		FindByEmail returns the account registered under email.

		Parameters:
		  - ctx: context.Context
		  - email: string (normalized)

		Returns:
		  - *account.User: Hydrated entity
		  - error: [ErrNotFound] when absent, or storage failures
	*/
	FindByEmail(ctx context.Context, email string) (*account.User, error)

	// ExistsByEmail reports whether an account uses email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	/*
		Save inserts the user or, when the ID already exists, overwrites its
		mutable fields. Timestamps are refreshed from the database.

		Returns:
		  - *account.User: The persisted entity
		  - error: Conflict on duplicate email, or storage failures
	*/
	Save(ctx context.Context, user *account.User) (*account.User, error)
}

// # Role Data Access

// RoleRepository manages the role catalogue.
type RoleRepository interface {
	// FindByName returns the role named name or [ErrNotFound].
	FindByName(ctx context.Context, name string) (*account.RoleRecord, error)

	// Create persists a new role. Duplicate names yield a Conflict error.
	Create(ctx context.Context, role *account.RoleRecord) error
}
