package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gate-tracker-server/models"
)

// RecordAttempt stores a graded attempt.
func (s *Store) RecordAttempt(ctx context.Context, a models.Attempt) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO attempts (id, email, question_id, subject_id, topic_id, selected_option, is_correct)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Email, a.QuestionID, a.SubjectID, a.TopicID, a.SelectedOption, a.IsCorrect)
	if err != nil {
		return fmt.Errorf("failed to record attempt for %s: %w", a.Email, err)
	}
	return nil
}

// ListAttempts returns every attempt recorded for email, oldest first.
func (s *Store) ListAttempts(ctx context.Context, email string) ([]models.Attempt, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, email, question_id, subject_id, topic_id, selected_option, is_correct, created_at
		FROM attempts WHERE email = $1
		ORDER BY created_at
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts for %s: %w", email, err)
	}
	attempts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Attempt, error) {
		var a models.Attempt
		err := row.Scan(&a.ID, &a.Email, &a.QuestionID, &a.SubjectID, &a.TopicID, &a.SelectedOption, &a.IsCorrect, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan attempts for %s: %w", email, err)
	}
	return attempts, nil
}
