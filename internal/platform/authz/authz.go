// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package authz implements capability-based authorization.

A [Permission] is a predicate over a [Context] (who is asking, plus an optional
target resource). [Authorize] is the gate every protected use case calls before
a mutating or sensitive read operation.

Architecture:

  - Permissions are small value types sharing one method, [Permission.Allows].
  - Resource ownership is reduced by the caller to an [Ownership] descriptor,
    so permissions never inspect resource structs.
  - Every variant fails closed: a nil user is always denied.
*/
package authz

import (
	"slices"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

// # Context

// Context pairs the current user with the optional resource being accessed.
// It is built per check and never stored.
type Context struct {
	User     *account.User
	Resource Ownership
}

// For builds a context without a target resource.
func For(user *account.User) Context {
	return Context{User: user}
}

// ForResource builds a context targeting a resource with the given ownership.
func ForResource(user *account.User, resource Ownership) Context {
	return Context{User: user, Resource: resource}
}

// # Gate

// Authorize evaluates p against ctx and returns a 403 [apperr.AppError]
// with the fixed "Insufficient permissions" detail on denial.
func Authorize(p Permission, ctx Context) error {
	if p == nil || !p.Allows(ctx) {
		return apperr.Forbidden()
	}
	return nil
}

// # Permissions

// Permission decides whether a context is allowed to proceed.
type Permission interface {
	Allows(ctx Context) bool
}

// RolePermission allows users whose role equals Role.
type RolePermission struct {
	Role sec.Role
}

func (p RolePermission) Allows(ctx Context) bool {
	return hasValidRole(ctx.User) && ctx.User.Role == p.Role
}

// AnyRolePermission allows users whose role is one of Roles.
type AnyRolePermission struct {
	Roles []sec.Role
}

// AnyRole is shorthand for an [AnyRolePermission].
func AnyRole(roles ...sec.Role) AnyRolePermission {
	return AnyRolePermission{Roles: roles}
}

func (p AnyRolePermission) Allows(ctx Context) bool {
	return hasValidRole(ctx.User) && slices.Contains(p.Roles, ctx.User.Role)
}

// AdminPermission allows administrators only.
type AdminPermission struct{}

func (AdminPermission) Allows(ctx Context) bool {
	return hasValidRole(ctx.User) && ctx.User.Role == sec.RoleAdmin
}

// UserPermission allows any holder of an account role.
type UserPermission struct{}

func (UserPermission) Allows(ctx Context) bool {
	return hasValidRole(ctx.User) && slices.Contains(sec.AccountRoles, ctx.User.Role)
}

// SelfOrAdminPermission allows administrators, and otherwise the owner of the
// target resource. Without a target resource, any known role is allowed.
type SelfOrAdminPermission struct{}

func (SelfOrAdminPermission) Allows(ctx Context) bool {
	if !hasValidRole(ctx.User) {
		return false
	}
	if ctx.User.Role == sec.RoleAdmin {
		return true
	}
	if !ctx.Resource.Present() {
		return true
	}
	return ctx.Resource.OwnedBy(ctx.User)
}

// Predefined permission values used by route wiring.
var (
	Admin       Permission = AdminPermission{}
	User        Permission = UserPermission{}
	SelfOrAdmin Permission = SelfOrAdminPermission{}
	Moderation  Permission = AnyRole(sec.RoleAdmin, sec.RoleModerator)
)

// hasValidRole rejects nil users and roles outside the closed set.
func hasValidRole(user *account.User) bool {
	return user != nil && user.Role.Valid()
}
