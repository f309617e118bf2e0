// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package question

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/authz"
	"github.com/htilssu/demarthology-api/internal/platform/validate"
	"github.com/htilssu/demarthology-api/internal/users/account"
	"github.com/htilssu/demarthology-api/pkg/pointer"
	"github.com/htilssu/demarthology-api/pkg/slice"
	"github.com/htilssu/demarthology-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the question lifecycle. Every protected operation
// passes through [authz.Authorize] before touching storage.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new question [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput is the payload of a new question.
type CreateInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	SymptomIDs []string `json:"symptom_ids"`
	ImageURLs  []string `json:"image_urls"`
}

// ModerateInput is a moderation decision.
type ModerateInput struct {
	Action          string  `json:"action"`
	RejectionReason *string `json:"rejection_reason"`
}

// # Question Lifecycle

/*
CreateQuestion submits a question for moderation.

Description: Any account holder may ask. The question starts pending and is
hidden from the public list until approved.

Returns:
  - *Question: Created entity
  - error: Unauthorized, Forbidden, Validation (including unknown symptoms)
*/
func (service *Service) CreateQuestion(ctx context.Context, author *account.User, input CreateInput) (*Question, error) {
	if err := gate(authz.User, authz.For(author)); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	symptomIDs := dedupe(input.SymptomIDs)
	imageURLs := slice.Filter(slice.Map(input.ImageURLs, strings.TrimSpace), func(s string) bool { return s != "" })

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MinLen(FieldTitle, title, TitleMinLen).
		MaxLen(FieldTitle, title, TitleMaxLen).
		Required(FieldContent, content).
		MinLen(FieldContent, content, ContentMinLen).
		MaxLen(FieldContent, content, ContentMaxLen).
		Custom(FieldSymptomIDs, len(symptomIDs) > MaxSymptoms, "Too many symptoms").
		Custom(FieldImageURLs, len(imageURLs) > MaxImages, "Too many images")
	for _, id := range symptomIDs {
		validator.UUID(FieldSymptomIDs, id)
	}
	for _, link := range imageURLs {
		validator.Custom(FieldImageURLs, !isWebURL(link), "Must be an http(s) URL")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	question := &Question{
		ID:         uuid.New(),
		Title:      title,
		Content:    content,
		AuthorID:   author.ID,
		SymptomIDs: symptomIDs,
		ImageURLs:  imageURLs,
		Status:     StatusPending,
	}
	if question.ImageURLs == nil {
		question.ImageURLs = []string{}
	}
	if question.SymptomIDs == nil {
		question.SymptomIDs = []string{}
	}

	if err := service.repo.Create(ctx, question); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "question_created",
		slog.String("question_id", question.ID),
		slog.String("author_id", author.ID),
	)
	return question, nil
}

/*
ListApproved returns the public question feed, newest first.

Parameters:
  - symptomIDs: Optional tag filter; matches any. Malformed ids are rejected.
*/
func (service *Service) ListApproved(ctx context.Context, symptomIDs []string, limit, offset int) ([]ListItem, int, error) {
	validator := &validate.Validator{}
	for _, id := range symptomIDs {
		validator.UUID(FieldSymptomIDs, id)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.list(ctx, Filter{Status: StatusApproved, SymptomIDs: symptomIDs}, limit, offset)
}

// ListPending returns the moderation queue. Moderators and admins only.
func (service *Service) ListPending(ctx context.Context, moderator *account.User, limit, offset int) ([]ListItem, int, error) {
	if err := gate(authz.Moderation, authz.For(moderator)); err != nil {
		return nil, 0, err
	}
	return service.list(ctx, Filter{Status: StatusPending}, limit, offset)
}

func (service *Service) list(ctx context.Context, filter Filter, limit, offset int) ([]ListItem, int, error) {
	questions, total, err := service.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(questions, NewListItem), total, nil
}

/*
GetQuestion returns a question with its symptoms and counts the view.

Description: Unapproved questions are visible to their author and to
moderators; everyone else gets NotFound.

Returns:
  - *Detail: Question with hydrated symptoms
  - error: NotFound
*/
func (service *Service) GetQuestion(ctx context.Context, viewer *account.User, id string) (*Detail, error) {
	question, err := service.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if question.Status != StatusApproved && !canReview(viewer, question) {
		return nil, ErrNotFound
	}

	views, err := service.repo.IncrementViews(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	question.ViewCount = views

	symptoms, err := service.repo.Symptoms(ctx, question.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{Question: question, Symptoms: symptoms}, nil
}

/*
ModerateQuestion approves or rejects a pending question.

Description: Rejections require a reason; approvals clear any previous one.
Only pending questions can be moderated.

Returns:
  - *Question: Updated entity
  - error: Forbidden, Validation, NotFound or Conflict (already moderated)
*/
func (service *Service) ModerateQuestion(ctx context.Context, moderator *account.User, id string, input ModerateInput) (*Question, error) {
	if err := gate(authz.Moderation, authz.For(moderator)); err != nil {
		return nil, err
	}

	action := strings.ToLower(strings.TrimSpace(input.Action))
	reason := strings.TrimSpace(pointer.Fallback(input.RejectionReason, ""))

	validator := &validate.Validator{}
	validator.OneOf(FieldAction, action, ActionApprove, ActionReject)
	if action == ActionReject {
		validator.Required(FieldRejectionReason, reason).MaxLen(FieldRejectionReason, reason, ReasonMaxLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	question, err := service.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if question.Status != StatusPending {
		return nil, apperr.Conflict("Question has already been moderated")
	}

	question.ModeratedBy = pointer.To(moderator.ID)
	question.ModeratedAt = pointer.To(service.now())
	switch action {
	case ActionApprove:
		question.Status = StatusApproved
		question.RejectionReason = nil
	case ActionReject:
		question.Status = StatusRejected
		question.RejectionReason = pointer.To(reason)
	}

	if err := service.repo.Moderate(ctx, question); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "question_moderated",
		slog.String("question_id", question.ID),
		slog.String("moderator_id", moderator.ID),
		slog.String("status", string(question.Status)),
	)
	return question, nil
}

/*
DeleteQuestion removes a question. Allowed for its author and for admins.

Returns:
  - error: Unauthorized, NotFound or Forbidden
*/
func (service *Service) DeleteQuestion(ctx context.Context, actor *account.User, id string) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	question, err := service.find(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(authz.SelfOrAdmin, authz.ForResource(actor, authz.OwnedByUser(question.AuthorID))); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, question.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "question_deleted",
		slog.String("question_id", question.ID),
		slog.String("actor_id", actor.ID),
	)
	return nil
}

// # Helpers

// find short-circuits malformed ids to NotFound before they reach storage.
func (service *Service) find(ctx context.Context, id string) (*Question, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}
	return service.repo.FindByID(ctx, id)
}

// gate distinguishes anonymous callers (401) from insufficient roles (403).
func gate(permission authz.Permission, ctx authz.Context) error {
	if ctx.User == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return authz.Authorize(permission, ctx)
}

func canReview(viewer *account.User, question *Question) bool {
	return authz.OwnedByUser(question.AuthorID).OwnedBy(viewer) ||
		authz.Moderation.Allows(authz.For(viewer))
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var unique []string
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func isWebURL(raw string) bool {
	link, err := url.ParseRequestURI(raw)
	return err == nil && (link.Scheme == "http" || link.Scheme == "https") && link.Host != ""
}
