// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package symptom manages the catalogue of dermatological symptoms that forum
questions are tagged with.

# Core Responsibility

  - Catalogue: Defines the [Symptom] entity and its URL slug.
  - Curation: Create, update and delete are reserved for moderators and admins.
  - Discovery: Public listing and lookup by ID or slug.
*/
package symptom

import "time"

// # Core Entities

// Symptom is a catalogue entry questions can reference.
type Symptom struct {
	ID          string    `json:"id"` // UUIDv7
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Search & Filtering

// Filter holds parameters for listing symptoms.
type Filter struct {
	Query string `json:"q"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
)

// # Constraints

const (
	NameMaxLen        = 100
	DescriptionMaxLen = 1000
)

// MsgDeleted acknowledges a successful deletion.
const MsgDeleted = "Symptom deleted successfully"
