// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package symptom

import "context"

// # Symptom Data Access

// Repository defines the data access contract for the symptom catalogue.
type Repository interface {

	/*
		List returns a filtered, paginated slice of symptoms and the total count.

		Parameters:
		  - ctx: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Symptom: Slice ordered by name
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Symptom, int, error)

	// FindByID returns the symptom or a NotFound error.
	FindByID(ctx context.Context, id string) (*Symptom, error)

	// FindBySlug returns the symptom or a NotFound error.
	FindBySlug(ctx context.Context, slug string) (*Symptom, error)

	// Create inserts a symptom. A duplicate slug yields a Conflict error.
	Create(ctx context.Context, symptom *Symptom) error

	// Update persists name, slug and description.
	Update(ctx context.Context, symptom *Symptom) error

	// Delete removes the symptom and its question links.
	Delete(ctx context.Context, id string) error
}
