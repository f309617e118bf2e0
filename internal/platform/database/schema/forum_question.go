// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package schema

// ForumQuestionTable represents the 'questions' table
type ForumQuestionTable struct {
	Table            string
	ID               string
	Title            string
	Content          string
	AuthorID         string
	ImageURLs        string
	Status           string
	ModeratedBy      string
	ModeratedAt      string
	RejectionReason  string
	ViewCount        string
	Upvotes          string
	Downvotes        string
	IsResolved       string
	AcceptedAnswerID string
	CreatedAt        string
	UpdatedAt        string
}

// ForumQuestion is the schema definition for questions
var ForumQuestion = ForumQuestionTable{
	Table:            "questions",
	ID:               "id",
	Title:            "title",
	Content:          "content",
	AuthorID:         "author_id",
	ImageURLs:        "image_urls",
	Status:           "status",
	ModeratedBy:      "moderated_by",
	ModeratedAt:      "moderated_at",
	RejectionReason:  "rejection_reason",
	ViewCount:        "view_count",
	Upvotes:          "upvotes",
	Downvotes:        "downvotes",
	IsResolved:       "is_resolved",
	AcceptedAnswerID: "accepted_answer_id",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

// Columns returns all standard column names in scan order
func (t ForumQuestionTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Content, t.AuthorID, t.ImageURLs, t.Status,
		t.ModeratedBy, t.ModeratedAt, t.RejectionReason, t.ViewCount,
		t.Upvotes, t.Downvotes, t.IsResolved, t.AcceptedAnswerID,
		t.CreatedAt, t.UpdatedAt,
	}
}

// ForumQuestionSymptomTable represents the 'question_symptoms' join table
type ForumQuestionSymptomTable struct {
	Table      string
	QuestionID string
	SymptomID  string
}

// ForumQuestionSymptom is the schema definition for question_symptoms
var ForumQuestionSymptom = ForumQuestionSymptomTable{
	Table:      "question_symptoms",
	QuestionID: "question_id",
	SymptomID:  "symptom_id",
}
