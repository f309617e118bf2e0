// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package schema

// UserRoleTable represents the 'roles' table
type UserRoleTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	IsActive    string
	CreatedAt   string
}

// UserRole is the schema definition for roles
var UserRole = UserRoleTable{
	Table:       "roles",
	ID:          "id",
	Name:        "name",
	Description: "description",
	IsActive:    "is_active",
	CreatedAt:   "created_at",
}
