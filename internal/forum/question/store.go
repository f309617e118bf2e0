// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package question

import (
	"context"

	"github.com/htilssu/demarthology-api/internal/forum/symptom"
)

// # Question Data Access

// Repository defines the data access contract for questions.
type Repository interface {

	/*
		List returns a filtered page of questions, newest first, and the total count.

		Parameters:
		  - ctx: context.Context
		  - filter: Filter (status, symptom tags)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Question: Questions with SymptomIDs populated
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Question, int, error)

	// FindByID returns the question with its SymptomIDs, or [ErrNotFound].
	FindByID(ctx context.Context, id string) (*Question, error)

	// Symptoms returns the catalogue entries linked to a question.
	Symptoms(ctx context.Context, questionID string) ([]*symptom.Symptom, error)

	/*
		Create inserts the question and its symptom links atomically.

		Returns:
		  - error: [ErrUnknownSymptom] when a linked symptom does not exist
	*/
	Create(ctx context.Context, question *Question) error

	// IncrementViews bumps view_count and returns the new value.
	IncrementViews(ctx context.Context, id string) (int, error)

	// Moderate persists status, moderator, timestamp and rejection reason.
	Moderate(ctx context.Context, question *Question) error

	// Delete removes a question and its links.
	Delete(ctx context.Context, id string) error
}
