package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gate-tracker-server/models"
	"gate-tracker-server/utils"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the PostgreSQL-backed persistence layer.
type Store struct {
	pool *pgxpool.Pool
}

// InitDB initializes the PostgreSQL database connection pool
func InitDB(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Ping the database to verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL database!")
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CreateSchema sets up the tables the server needs.
func (s *Store) CreateSchema(ctx context.Context) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS questions (
		id BIGSERIAL PRIMARY KEY,
		subject_id VARCHAR(100) NOT NULL,
		topic_id VARCHAR(100) NOT NULL,
		year INT NOT NULL CHECK (year BETWEEN 1990 AND 2030),
		marks INT NOT NULL CHECK (marks IN (1, 2)),
		question_text TEXT NOT NULL,
		option_a TEXT NOT NULL,
		option_b TEXT NOT NULL,
		option_c TEXT NOT NULL,
		option_d TEXT NOT NULL,
		correct_option CHAR(1) NOT NULL CHECK (correct_option IN ('A', 'B', 'C', 'D')),
		solution_text TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS questions_subject_topic_idx ON questions (subject_id, topic_id);

	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY, -- uuid
		email VARCHAR(255) NOT NULL,
		question_id BIGINT NOT NULL,
		subject_id VARCHAR(100) NOT NULL,
		topic_id VARCHAR(100) NOT NULL,
		selected_option CHAR(1) NOT NULL CHECK (selected_option IN ('A', 'B', 'C', 'D')),
		is_correct BOOLEAN NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS attempts_email_idx ON attempts (email);

	CREATE TABLE IF NOT EXISTS error_logs (
		id SERIAL PRIMARY KEY,
		timestamp TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		source TEXT NOT NULL, -- e.g., "ingestion", "bulk_import"
		file_path TEXT,
		error_message TEXT NOT NULL,
		suggested_fix TEXT
	);

	CREATE TABLE IF NOT EXISTS admin_events (
		id SERIAL PRIMARY KEY,
		timestamp TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		action VARCHAR(255),
		actor VARCHAR(255), -- User email or 'system'
		target TEXT,
		notes TEXT
	);
	`
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}
	return nil
}

// LogError adds an entry to the error_logs table
func (s *Store) LogError(ctx context.Context, source, filePath, errMsg, fixSug string) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO error_logs (source, file_path, error_message, suggested_fix)
		VALUES ($1, $2, $3, $4)
	`, source, utils.StringPtr(filePath), errMsg, utils.StringPtr(fixSug))
	if err != nil {
		log.Printf("ERROR: Failed to log error to database: %v. Original error: %s", err, errMsg)
	}
}

// LogAdminEvent adds an entry to the admin_events table
func (s *Store) LogAdminEvent(ctx context.Context, actor, action, target, notes string) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO admin_events (action, actor, target, notes)
		VALUES ($1, $2, $3, $4)
	`, action, actor, target, notes)
	if err != nil {
		log.Printf("ERROR: Failed to log admin event to database: %v. Event: %s by %s on %s", err, action, actor, target)
	}
}

// RecentErrors returns the newest error log entries first, optionally limited
// to one source such as "ingestion" or "bulk_import".
func (s *Store) RecentErrors(ctx context.Context, source string, limit int) ([]models.ErrorLog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, timestamp, source, file_path, error_message, suggested_fix
		FROM error_logs
		WHERE ($1 = '' OR source = $1)
		ORDER BY timestamp DESC LIMIT $2
	`, source, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query error logs: %w", err)
	}
	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ErrorLog, error) {
		var e models.ErrorLog
		err := row.Scan(&e.ID, &e.Timestamp, &e.Source, &e.FilePath, &e.ErrorMessage, &e.SuggestedFix)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan error logs: %w", err)
	}
	return logs, nil
}

// RecentAdminEvents returns the newest admin events first.
func (s *Store) RecentAdminEvents(ctx context.Context, limit int) ([]models.AdminEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, timestamp, action, actor, target, notes
		FROM admin_events ORDER BY timestamp DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin events: %w", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AdminEvent, error) {
		var ae models.AdminEvent
		err := row.Scan(&ae.ID, &ae.Timestamp, &ae.Action, &ae.Actor, &ae.Target, &ae.Notes)
		return ae, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin events: %w", err)
	}
	return events, nil
}
