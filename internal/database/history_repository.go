package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const defaultRecentLimit = 20

// PredictionRecord is one stored prediction.
type PredictionRecord struct {
	ID         int64     `db:"id"         json:"id"`
	Title      string    `db:"title"      json:"title"`
	Company    string    `db:"company"    json:"company"`
	Label      string    `db:"label"      json:"label"`
	Confidence float64   `db:"confidence" json:"confidence"`
	ProbFake   float64   `db:"prob_fake"  json:"prob_fake"`
	Method     string    `db:"method"     json:"method"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// HistoryRepository handles database operations for prediction history.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new prediction history repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Migrate creates the predictions table if it does not exist.
func (r *HistoryRepository) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS predictions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			company TEXT NOT NULL,
			label TEXT NOT NULL,
			confidence REAL NOT NULL,
			prob_fake REAL NOT NULL,
			method TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create predictions table: %w", err)
	}
	return nil
}

// Create inserts a new prediction record and fills in its ID.
func (r *HistoryRepository) Create(ctx context.Context, record *PredictionRecord) error {
	query := `
		INSERT INTO predictions (title, company, label, confidence, prob_fake, method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(
		ctx,
		query,
		record.Title,
		record.Company,
		record.Label,
		record.Confidence,
		record.ProbFake,
		record.Method,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read prediction record id: %w", err)
	}
	record.ID = id
	return nil
}

// Recent returns the newest records, most recent first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]PredictionRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	records := []PredictionRecord{}
	query := `
		SELECT id, title, company, label, confidence, prob_fake, method, created_at
		FROM predictions
		ORDER BY id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list prediction records: %w", err)
	}
	return records, nil
}
