// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package schema

// UserAccountTable represents the 'users' table
type UserAccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	DateOfBirth  string
	Role         string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users
var UserAccount = UserAccountTable{
	Table:        "users",
	ID:           "id",
	Email:        "email",
	PasswordHash: "password_hash",
	FirstName:    "first_name",
	LastName:     "last_name",
	DateOfBirth:  "date_of_birth",
	Role:         "role",
	IsActive:     "is_active",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns all standard column names in scan order
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.FirstName, t.LastName,
		t.DateOfBirth, t.Role, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
