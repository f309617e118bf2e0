// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package question manages forum questions and their moderation workflow.

# Core Responsibility

  - Lifecycle: Questions are created pending and become public once approved.
  - Moderation: Moderators and admins approve or reject pending questions.
  - Discovery: Approved questions are listed publicly, filterable by symptom.
  - Ownership: Authors and admins may delete a question.
*/
package question

import (
	"time"
	"unicode/utf8"

	"github.com/htilssu/demarthology-api/internal/forum/symptom"
)

// # Question Enums

// Status is the moderation state of a question.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Moderation actions accepted by the moderate endpoint.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// # Core Entities

// Question is a member's request for advice.
type Question struct {
	ID               string     `json:"id"` // UUIDv7
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	AuthorID         string     `json:"author_id"`
	SymptomIDs       []string   `json:"symptom_ids"`
	ImageURLs        []string   `json:"image_urls"`
	Status           Status     `json:"status"`
	ModeratedBy      *string    `json:"moderated_by,omitempty"`
	ModeratedAt      *time.Time `json:"moderated_at,omitempty"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	ViewCount        int        `json:"view_count"`
	Upvotes          int        `json:"upvotes"`
	Downvotes        int        `json:"downvotes"`
	IsResolved       bool       `json:"is_resolved"`
	AcceptedAnswerID *string    `json:"accepted_answer_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Detail is a question together with its hydrated symptoms.
type Detail struct {
	*Question
	Symptoms []*symptom.Symptom `json:"symptoms"`
}

// ListItem is the list projection of a question. Content is truncated to
// [PreviewLen] characters.
type ListItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	SymptomIDs []string  `json:"symptom_ids"`
	Status     Status    `json:"status"`
	ViewCount  int       `json:"view_count"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	IsResolved bool      `json:"is_resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewListItem projects q onto its list shape.
func NewListItem(q *Question) ListItem {
	return ListItem{
		ID:         q.ID,
		Title:      q.Title,
		Content:    preview(q.Content),
		AuthorID:   q.AuthorID,
		SymptomIDs: q.SymptomIDs,
		Status:     q.Status,
		ViewCount:  q.ViewCount,
		Upvotes:    q.Upvotes,
		Downvotes:  q.Downvotes,
		IsResolved: q.IsResolved,
		CreatedAt:  q.CreatedAt,
	}
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLen {
		return content
	}
	return string([]rune(content)[:PreviewLen]) + "..."
}

// # Search & Filtering

// Filter holds parameters for listing questions.
type Filter struct {
	Status     Status
	SymptomIDs []string // Matches questions tagged with any of them.
}

// # Field Identifiers

const (
	FieldTitle           = "title"
	FieldContent         = "content"
	FieldSymptomIDs      = "symptom_ids"
	FieldImageURLs       = "image_urls"
	FieldAction          = "action"
	FieldRejectionReason = "rejection_reason"
)

// # Constraints

const (
	TitleMinLen   = 10
	TitleMaxLen   = 200
	ContentMinLen = 20
	ContentMaxLen = 10000
	MaxSymptoms   = 10
	MaxImages     = 10
	ReasonMaxLen  = 500
	PreviewLen    = 200
)

// # Messages

const (
	MsgCreated   = "Question created successfully. Waiting for approval."
	MsgDeleted   = "Question deleted successfully"
	MsgModerated = "Question moderated successfully"
)
