// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package symptom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/database/schema"
	"github.com/htilssu/demarthology-api/internal/platform/dberr"
)

// Repository errors surfaced to the service unchanged.
var (
	ErrNotFound = apperr.NotFound("Symptom")
	ErrExists   = apperr.Conflict("Symptom already exists")
)

var (
	symptomTable   = schema.ForumSymptom
	symptomColumns = schema.List(symptomTable.Columns())
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed symptom store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Symptom Retrieval

/*
List returns a filtered and paginated list of symptoms.

Description: Uses ILIKE on name for search and COUNT(*) OVER() for total metadata.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Symptom, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE TRUE`,
		symptomColumns, symptomTable.Table))

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", symptomTable.Name, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", symptomTable.Name, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_symptoms")
	}
	defer rows.Close()

	symptoms := make([]*Symptom, 0)
	var total int
	for rows.Next() {
		symptom := &Symptom{}
		if err := rows.Scan(
			&symptom.ID, &symptom.Name, &symptom.Slug, &symptom.Description,
			&symptom.CreatedAt, &symptom.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_symptom")
		}
		symptoms = append(symptoms, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_symptoms")
	}

	return symptoms, total, nil
}

// FindByID retrieves a single symptom by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Symptom, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, symptomColumns, symptomTable.Table, symptomTable.ID)
	return repository.findOne(ctx, query, id, "get_symptom_by_id")
}

// FindBySlug retrieves a symptom by its unique URL slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Symptom, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, symptomColumns, symptomTable.Table, symptomTable.Slug)
	return repository.findOne(ctx, query, slug, "get_symptom_by_slug")
}

func (repository *PostgresRepository) findOne(ctx context.Context, query string, arg any, action string) (*Symptom, error) {
	symptom := &Symptom{}
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&symptom.ID, &symptom.Name, &symptom.Slug, &symptom.Description,
		&symptom.CreatedAt, &symptom.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, action)
	}
	return symptom, nil
}

// # Symptom Mutation

// Create inserts a new symptom record.
func (repository *PostgresRepository) Create(ctx context.Context, symptom *Symptom) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		symptomTable.Table, symptomTable.ID, symptomTable.Name, symptomTable.Slug, symptomTable.Description,
		symptomTable.CreatedAt, symptomTable.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		symptom.ID, symptom.Name, symptom.Slug, symptom.Description,
	).Scan(&symptom.CreatedAt, &symptom.UpdatedAt)
	if dberr.IsUniqueViolation(err) {
		return ErrExists.WithCause(err)
	}
	return dberr.Wrap(err, "create_symptom")
}

// Update modifies the mutable symptom fields.
func (repository *PostgresRepository) Update(ctx context.Context, symptom *Symptom) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		symptomTable.Table,
		symptomTable.Name, symptomTable.Slug, symptomTable.Description, symptomTable.UpdatedAt,
		symptomTable.ID, symptomTable.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		symptom.ID, symptom.Name, symptom.Slug, symptom.Description,
	).Scan(&symptom.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case dberr.IsUniqueViolation(err):
		return ErrExists.WithCause(err)
	}
	return dberr.Wrap(err, "update_symptom")
}

// Delete removes a symptom. Question links cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, symptomTable.Table, symptomTable.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_symptom")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
