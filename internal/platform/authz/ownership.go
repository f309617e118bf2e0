// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package authz

import "github.com/htilssu/demarthology-api/internal/users/account"

type ownerField uint8

const (
	ownerAbsent ownerField = iota // no target resource
	ownerUnknown
	ownerUserID
	ownerEmail
	ownerOwnerID
)

// Ownership describes who owns a target resource. The zero value means the
// check has no target resource at all.
type Ownership struct {
	field ownerField
	value string
}

// OwnedByUser marks a resource whose user_id is id.
func OwnedByUser(id string) Ownership { return Ownership{field: ownerUserID, value: id} }

// OwnedByEmail marks a resource owned through its email field.
func OwnedByEmail(email string) Ownership { return Ownership{field: ownerEmail, value: email} }

// OwnedByOwner marks a resource whose owner_id is id.
func OwnedByOwner(id string) Ownership { return Ownership{field: ownerOwnerID, value: id} }

// NoOwnerInfo marks a resource whose owner cannot be determined.
// Ownership checks against it are denied.
func NoOwnerInfo() Ownership { return Ownership{field: ownerUnknown} }

// ResolveOwnership reduces the ownership-identifying fields of a resource to a
// single descriptor. The first non-empty field wins, in the order
// user_id, email, owner_id; later fields are not consulted.
func ResolveOwnership(userID, email, ownerID string) Ownership {
	switch {
	case userID != "":
		return OwnedByUser(userID)
	case email != "":
		return OwnedByEmail(email)
	case ownerID != "":
		return OwnedByOwner(ownerID)
	default:
		return NoOwnerInfo()
	}
}

// Present reports whether the context targets a resource.
func (o Ownership) Present() bool { return o.field != ownerAbsent }

// OwnedBy reports whether user owns the resource.
func (o Ownership) OwnedBy(user *account.User) bool {
	if user == nil {
		return false
	}
	switch o.field {
	case ownerUserID, ownerOwnerID:
		return user.ID != "" && o.value == user.ID
	case ownerEmail:
		return user.Email != "" && account.NormalizeEmail(o.value) == account.NormalizeEmail(user.Email)
	default:
		return false
	}
}
