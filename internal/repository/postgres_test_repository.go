package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cetprep/cetprep-backend/internal/model"
)

// PostgresTestRepository persists tests and their questions in PostgreSQL.
// Drop-in replacement for the memory store behind the same interface.
type PostgresTestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTestRepository creates a new PostgresTestRepository.
func NewPostgresTestRepository(pool *pgxpool.Pool) *PostgresTestRepository {
	return &PostgresTestRepository{pool: pool}
}

// List returns all tests with their questions, most recently created first.
func (r *PostgresTestRepository) List(ctx context.Context) ([]model.Test, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, start_time, end_time, created_at
		 FROM tests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.Title, &t.StartTime, &t.EndTime, &t.CreatedAt); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tests {
		qs, err := r.listQuestions(ctx, tests[i].ID)
		if err != nil {
			return nil, err
		}
		tests[i].Questions = qs
	}
	return tests, nil
}

// GetByID retrieves one test with its questions.
func (r *PostgresTestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	t := &model.Test{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, start_time, end_time, created_at
		 FROM tests WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.StartTime, &t.EndTime, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}

	qs, err := r.listQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Questions = qs
	return t, nil
}

// Add inserts a test and its questions in one transaction.
func (r *PostgresTestRepository) Add(ctx context.Context, t *model.Test) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO tests (id, title, start_time, end_time, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Title, t.StartTime, t.EndTime, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert test: %w", err)
	}

	for i, q := range t.Questions {
		_, err = tx.Exec(ctx,
			`INSERT INTO questions (id, test_id, position, text, options, correct_answer, section)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			q.ID, t.ID, i, q.Text, q.Options, q.CorrectAnswer, string(q.Section))
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresTestRepository) listQuestions(ctx context.Context, testID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, text, options, correct_answer, section
		 FROM questions WHERE test_id = $1 ORDER BY position`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var qs []model.Question
	for rows.Next() {
		var q model.Question
		var section string
		if err := rows.Scan(&q.ID, &q.Text, &q.Options, &q.CorrectAnswer, &section); err != nil {
			return nil, err
		}
		q.Section = model.Section(section)
		qs = append(qs, q)
	}
	return qs, rows.Err()
}
