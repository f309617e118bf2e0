// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package symptom

import (
	"context"
	"log/slog"
	"strings"

	"github.com/htilssu/demarthology-api/internal/platform/validate"
	"github.com/htilssu/demarthology-api/pkg/pointer"
	"github.com/htilssu/demarthology-api/pkg/slug"
	"github.com/htilssu/demarthology-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the symptom catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new symptom [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Input is the writable part of a [Symptom]. For updates, nil fields are
// left unchanged.
type Input struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListSymptoms retrieves a page of symptoms ordered by name.
func (service *Service) ListSymptoms(ctx context.Context, filter Filter, limit, offset int) ([]*Symptom, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.List(ctx, filter, limit, offset)
}

/*
GetSymptom retrieves a symptom by its UUID or slug.

Returns:
  - *Symptom: Hydrated entity
  - error: NotFound if missing
*/
func (service *Service) GetSymptom(ctx context.Context, identifier string) (*Symptom, error) {
	if uuid.Valid(identifier) {
		return service.repo.FindByID(ctx, identifier)
	}
	return service.repo.FindBySlug(ctx, identifier)
}

/*
CreateSymptom validates and persists a new catalogue entry.

Description: The slug is derived from the name; two names folding to the
same slug conflict.

Returns:
  - *Symptom: Created entity
  - error: Validation or Conflict
*/
func (service *Service) CreateSymptom(ctx context.Context, input Input) (*Symptom, error) {
	name := strings.TrimSpace(pointer.Fallback(input.Name, ""))

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, NameMaxLen)
	validateDescription(validator, input.Description)
	symptomSlug := slug.From(name)
	validator.Custom(FieldName, name != "" && symptomSlug == "", "Must contain at least one letter or digit")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	symptom := &Symptom{
		ID:          uuid.New(),
		Name:        name,
		Slug:        symptomSlug,
		Description: cleanDescription(input.Description),
	}
	if err := service.repo.Create(ctx, symptom); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "symptom_created",
		slog.String("symptom_id", symptom.ID),
		slog.String("slug", symptom.Slug),
	)
	return symptom, nil
}

/*
UpdateSymptom applies a partial update. Renaming regenerates the slug.

Returns:
  - *Symptom: Updated entity
  - error: Validation, NotFound or Conflict
*/
func (service *Service) UpdateSymptom(ctx context.Context, id string, input Input) (*Symptom, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	symptom, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		validator.Required(FieldName, name).MaxLen(FieldName, name, NameMaxLen)
		symptom.Name = name
		symptom.Slug = slug.From(name)
		validator.Custom(FieldName, name != "" && symptom.Slug == "", "Must contain at least one letter or digit")
	}
	if input.Description != nil {
		validateDescription(validator, input.Description)
		symptom.Description = cleanDescription(input.Description)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, symptom); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "symptom_updated", slog.String("symptom_id", symptom.ID))
	return symptom, nil
}

// DeleteSymptom removes a catalogue entry.
func (service *Service) DeleteSymptom(ctx context.Context, id string) error {
	if !uuid.Valid(id) {
		return ErrNotFound
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "symptom_deleted", slog.String("symptom_id", id))
	return nil
}

func validateDescription(validator *validate.Validator, description *string) {
	if description != nil {
		validator.MaxLen(FieldDescription, *description, DescriptionMaxLen)
	}
}

// cleanDescription trims the description; blank values are stored as NULL.
func cleanDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return pointer.To(trimmed)
}
