// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth

// # Field Identifiers

// Field names used in validation errors for the authentication domain.
const (
	FieldEmail              = "email"
	FieldPassword           = "password"
	FieldConfirmPassword    = "confirm_password"
	FieldFirstName          = "first_name"
	FieldLastName           = "last_name"
	FieldDateOfBirth        = "dob"
	FieldToken              = "token"
	FieldNewPassword        = "new_password"
	FieldConfirmNewPassword = "confirm_new_password"
)

// # Profile Constraints

const (
	NameMaxLen  = 100
	EmailMaxLen = 254

	// DateLayout is the accepted calendar-date format for dob.
	DateLayout = "2006-01-02"
)

// ResetSubject is the subject line handed to the notification sender.
const ResetSubject = "Password Reset Request"
