// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/htilssu/demarthology-api/internal/forum/symptom"
	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/database/schema"
	"github.com/htilssu/demarthology-api/internal/platform/dberr"
)

// Repository errors surfaced to the service unchanged.
var (
	ErrNotFound       = apperr.NotFound("Question")
	ErrUnknownSymptom = apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: FieldSymptomIDs, Message: "References an unknown symptom"})
)

var (
	questionTable = schema.ForumQuestion
	linkTable     = schema.ForumQuestionSymptom
	symptomTable  = schema.ForumSymptom
)

// selectQuestion reads every question column plus the linked symptom ids.
var selectQuestion = fmt.Sprintf(`
	SELECT %s,
		ARRAY(
			SELECT l.%s::text FROM %s l
			WHERE l.%s = q.%s
			ORDER BY l.%s
		) AS symptom_ids`,
	schema.Prefixed("q", questionTable.Columns()),
	linkTable.SymptomID, linkTable.Table, linkTable.QuestionID, questionTable.ID, linkTable.SymptomID,
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed question store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Question Retrieval

/*
List returns a filtered and paginated list of questions.

Description: The symptom filter matches questions linked to any of the given
symptoms. COUNT(*) OVER() supplies the total for pagination metadata.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Question, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectQuestion)
	queryBuilder.WriteString(fmt.Sprintf(`, COUNT(*) OVER() AS total FROM %s q WHERE TRUE`, questionTable.Table))

	args := []any{}
	argID := 1

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND q.%s = $%d", questionTable.Status, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	if len(filter.SymptomIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s f WHERE f.%s = q.%s AND f.%s = ANY($%d::uuid[]))",
			linkTable.Table, linkTable.QuestionID, questionTable.ID, linkTable.SymptomID, argID,
		))
		args = append(args, filter.SymptomIDs)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY q.%s DESC LIMIT $%d OFFSET $%d", questionTable.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_questions")
	}
	defer rows.Close()

	questions := make([]*Question, 0)
	var total int
	for rows.Next() {
		question, err := scanQuestion(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_question")
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_questions")
	}

	return questions, total, nil
}

// FindByID retrieves a single question by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Question, error) {
	query := fmt.Sprintf(`%s FROM %s q WHERE q.%s = $1`, selectQuestion, questionTable.Table, questionTable.ID)

	question, err := scanQuestion(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, "get_question_by_id")
	}
	return question, nil
}

// Symptoms hydrates the catalogue entries linked to a question, ordered by name.
func (repository *PostgresRepository) Symptoms(ctx context.Context, questionID string) ([]*symptom.Symptom, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s s
		JOIN %s l ON l.%s = s.%s
		WHERE l.%s = $1
		ORDER BY s.%s`,
		schema.Prefixed("s", symptomTable.Columns()),
		symptomTable.Table,
		linkTable.Table, linkTable.SymptomID, symptomTable.ID,
		linkTable.QuestionID,
		symptomTable.Name,
	)

	rows, err := repository.pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_question_symptoms")
	}
	defer rows.Close()

	symptoms := make([]*symptom.Symptom, 0)
	for rows.Next() {
		item := &symptom.Symptom{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug, &item.Description, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_question_symptom")
		}
		symptoms = append(symptoms, item)
	}
	return symptoms, dberr.Wrap(rows.Err(), "list_question_symptoms")
}

// # Question Mutation

/*
Create inserts a question and its symptom links in one transaction.

Description: Links are queued on a pgx.Batch inside the transaction. A
foreign-key failure on any link rolls the whole question back.
*/
func (repository *PostgresRepository) Create(ctx context.Context, question *Question) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "create_question_begin")
	}
	defer transaction.Rollback(ctx)

	imageURLs := question.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		questionTable.Table,
		questionTable.ID, questionTable.Title, questionTable.Content,
		questionTable.AuthorID, questionTable.ImageURLs, questionTable.Status,
		questionTable.CreatedAt, questionTable.UpdatedAt,
	)
	err = transaction.QueryRow(ctx, insert,
		question.ID, question.Title, question.Content,
		question.AuthorID, imageURLs, string(question.Status),
	).Scan(&question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_question")
	}

	if len(question.SymptomIDs) > 0 {
		link := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			linkTable.Table, linkTable.QuestionID, linkTable.SymptomID)

		batch := &pgx.Batch{}
		for _, symptomID := range question.SymptomIDs {
			batch.Queue(link, question.ID, symptomID)
		}
		if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
			if dberr.IsForeignKeyViolation(err) {
				return ErrUnknownSymptom.WithCause(err)
			}
			return dberr.Wrap(err, "create_question_links")
		}
	}

	return dberr.Wrap(transaction.Commit(ctx), "create_question_commit")
}

// IncrementViews bumps the view counter atomically.
func (repository *PostgresRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = %[2]s + 1 WHERE %[3]s = $1 RETURNING %[2]s`,
		questionTable.Table, questionTable.ViewCount, questionTable.ID)

	var views int
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, dberr.Wrap(err, "increment_question_views")
	}
	return views, nil
}

// Moderate records a moderation decision.
func (repository *PostgresRepository) Moderate(ctx context.Context, question *Question) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		questionTable.Table,
		questionTable.Status, questionTable.ModeratedBy, questionTable.ModeratedAt,
		questionTable.RejectionReason, questionTable.UpdatedAt,
		questionTable.ID,
		questionTable.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		question.ID, string(question.Status), question.ModeratedBy, question.ModeratedAt, question.RejectionReason,
	).Scan(&question.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return dberr.Wrap(err, "moderate_question")
}

// Delete removes a question. Links cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, questionTable.Table, questionTable.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_question")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanQuestion reads the columns of selectQuestion, followed by extra targets.
func scanQuestion(row pgx.Row, extra ...any) (*Question, error) {
	var (
		question Question
		status   string
	)
	targets := []any{
		&question.ID, &question.Title, &question.Content, &question.AuthorID, &question.ImageURLs, &status,
		&question.ModeratedBy, &question.ModeratedAt, &question.RejectionReason, &question.ViewCount,
		&question.Upvotes, &question.Downvotes, &question.IsResolved, &question.AcceptedAnswerID,
		&question.CreatedAt, &question.UpdatedAt, &question.SymptomIDs,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	question.Status = Status(status)
	return &question, nil
}
