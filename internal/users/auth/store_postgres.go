// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/database/schema"
	"github.com/htilssu/demarthology-api/internal/platform/dberr"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

var (
	userTable   = schema.UserAccount
	userColumns = schema.List(userTable.Columns())
	roleTable   = schema.UserRole
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on the users table.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByEmail retrieves a user by exact (already normalized) email.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, userTable.Table, userTable.Email)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}
	return user, nil
}

// ExistsByEmail checks email uniqueness without loading the row.
func (repository *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, userTable.Table, userTable.Email)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_failed: %w", err)
	}
	return exists, nil
}

/*
Save upserts a user keyed by ID.

Description: Registration inserts a fresh row; password resets and role changes
overwrite the mutable columns. created_at is never rewritten.

Returns:
  - *account.User: Entity with database-assigned timestamps
  - error: apperr.Conflict on duplicate email, or storage failures
*/
func (repository *PostgresUserRepository) Save(ctx context.Context, user *account.User) (*account.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s, %[8]s, %[9]s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (%[2]s) DO UPDATE SET
			%[3]s = EXCLUDED.%[3]s,
			%[4]s = EXCLUDED.%[4]s,
			%[5]s = EXCLUDED.%[5]s,
			%[6]s = EXCLUDED.%[6]s,
			%[7]s = EXCLUDED.%[7]s,
			%[8]s = EXCLUDED.%[8]s,
			%[9]s = EXCLUDED.%[9]s,
			%[10]s = NOW()
		RETURNING %[11]s`,
		userTable.Table, userTable.ID, userTable.Email, userTable.PasswordHash, userTable.FirstName, userTable.LastName,
		userTable.DateOfBirth, userTable.Role, userTable.IsActive, userTable.UpdatedAt, userColumns,
	)

	saved, err := scanUser(repository.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.DateOfBirth,
		user.Role.String(),
		user.IsActive,
	))
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Email is already registered").WithCause(err)
		}
		return nil, fmt.Errorf("postgres_user_repo_save_failed: %w", err)
	}
	return saved, nil
}

func scanUser(row pgx.Row) (*account.User, error) {
	var (
		user account.User
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.DateOfBirth,
		&role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Unknown stored roles collapse to the empty role, which grants nothing.
	user.Role = sec.ParseRole(role)
	return &user, nil
}

// # Role Repository

// PostgresRoleRepository implements [RoleRepository] on the roles table.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new PostgreSQL implementation of the RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

// FindByName retrieves a role by its unique name.
func (repository *PostgresRoleRepository) FindByName(ctx context.Context, name string) (*account.RoleRecord, error) {
	query := fmt.Sprintf(`SELECT %s, %s, COALESCE(%s, ''), %s, %s FROM %s WHERE %s = $1`,
		roleTable.ID, roleTable.Name, roleTable.Description, roleTable.IsActive, roleTable.CreatedAt, roleTable.Table, roleTable.Name)

	var (
		role     account.RoleRecord
		roleName string
	)
	err := repository.pool.QueryRow(ctx, query, name).Scan(
		&role.ID, &roleName, &role.Description, &role.IsActive, &role.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_role_repo_find_failed: %w", err)
	}

	role.Name = sec.Role(roleName)
	return &role, nil
}

// Create inserts a new role row.
func (repository *PostgresRoleRepository) Create(ctx context.Context, role *account.RoleRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING %s`,
		roleTable.Table, roleTable.ID, roleTable.Name, roleTable.Description, roleTable.IsActive, roleTable.CreatedAt)

	err := repository.pool.QueryRow(ctx, query, role.ID, role.Name.String(), role.Description, role.IsActive).
		Scan(&role.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_role_repo_create_failed")
	}
	return nil
}
