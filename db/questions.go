package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gate-tracker-server/models"
)

const questionColumns = `id, subject_id, topic_id, year, marks, question_text,
	option_a, option_b, option_c, option_d, correct_option, solution_text, created_at`

func scanQuestion(row pgx.Row) (models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID, &q.SubjectID, &q.TopicID, &q.Year, &q.Marks, &q.QuestionText,
		&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption, &q.SolutionText, &q.CreatedAt,
	)
	return q, err
}

// ListQuestions returns questions newest first, optionally filtered by subject and topic.
func (s *Store) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE ($1 = '' OR subject_id = $1)
		AND ($2 = '' OR topic_id = $2)
		ORDER BY created_at DESC, id DESC
	`, filter.SubjectID, filter.TopicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	questions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Question, error) {
		return scanQuestion(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan questions: %w", err)
	}
	return questions, nil
}

// GetQuestion fetches one question by id.
func (s *Store) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	q, err := scanQuestion(s.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to fetch question %d: %w", id, err)
	}
	return q, nil
}

const insertQuestionSQL = `
	INSERT INTO questions (subject_id, topic_id, year, marks, question_text,
		option_a, option_b, option_c, option_d, correct_option, solution_text)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + questionColumns

func insertArgs(in models.QuestionInput) []any {
	return []any{
		in.SubjectID, in.TopicID, in.Year, in.Marks, in.QuestionText,
		in.OptionA, in.OptionB, in.OptionC, in.OptionD, in.CorrectOption, in.SolutionText,
	}
}

// CreateQuestion inserts a validated question and returns the stored row.
func (s *Store) CreateQuestion(ctx context.Context, in models.QuestionInput) (models.Question, error) {
	q, err := scanQuestion(s.pool.QueryRow(ctx, insertQuestionSQL, insertArgs(in)...))
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}
	return q, nil
}

// CreateQuestions inserts all questions in one transaction; either all are stored or none.
func (s *Store) CreateQuestions(ctx context.Context, in []models.QuestionInput) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	batch := &pgx.Batch{}
	for _, q := range in {
		batch.Queue(insertQuestionSQL, insertArgs(q)...)
	}
	results := tx.SendBatch(ctx, batch)
	for i := range in {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to insert question %d of bulk import: %w", i+1, err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish bulk insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk import: %w", err)
	}
	return len(in), nil
}

// DeleteQuestion removes a question and, through the foreign key, its attempts.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBySubject returns question counts grouped by subject and topic.
func (s *Store) CountBySubject(ctx context.Context) ([]models.SubjectCount, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT subject_id, topic_id, COUNT(*) FROM questions
		GROUP BY subject_id, topic_id
		ORDER BY subject_id, topic_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SubjectCount, error) {
		var sc models.SubjectCount
		err := row.Scan(&sc.SubjectID, &sc.TopicID, &sc.Count)
		return sc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan question counts: %w", err)
	}
	return counts, nil
}
