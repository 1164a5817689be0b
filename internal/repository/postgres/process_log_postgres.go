package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"qrcut/internal/model"
	"qrcut/internal/repository"
)

// ProcessLogPostgres is a PostgreSQL implementation of repository.ProcessLogRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ProcessLogPostgres struct {
	db *sql.DB
}

// NewProcessLogPostgres creates a new ProcessLogPostgres repository.
func NewProcessLogPostgres(db *sql.DB) *ProcessLogPostgres {
	return &ProcessLogPostgres{db: db}
}

var _ repository.ProcessLogRepository = (*ProcessLogPostgres)(nil)

// Append inserts every entry inside one transaction and returns the stored rows.
func (r *ProcessLogPostgres) Append(ctx context.Context, entries []model.ProcessLog) ([]model.ProcessLog, error) {
	if len(entries) == 0 {
		return []model.ProcessLog{}, nil
	}

	const q = `
		INSERT INTO process_logs (original_filename, processed_filename, qr_count, fill_color, fill_shape, opacity, output_format)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, processed_at
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]model.ProcessLog, 0, len(entries))
	for _, e := range entries {
		row := tx.QueryRowContext(ctx, q,
			e.OriginalFilename,
			e.ProcessedFilename,
			e.QRCount,
			e.FillColor,
			e.FillShape,
			e.Opacity,
			e.OutputFormat,
		)
		if err := row.Scan(&e.ID, &e.ProcessedAt); err != nil {
			return nil, fmt.Errorf("insert process log: %w", err)
		}
		out = append(out, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// Recent returns the latest rows ordered by processed_at, newest first.
func (r *ProcessLogPostgres) Recent(ctx context.Context, limit int) ([]model.ProcessLog, error) {
	const q = `
		SELECT id, original_filename, processed_filename, qr_count, fill_color, fill_shape, opacity, output_format, processed_at
		FROM process_logs
		ORDER BY processed_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProcessLog, 0)
	for rows.Next() {
		var l model.ProcessLog
		if err := rows.Scan(
			&l.ID,
			&l.OriginalFilename,
			&l.ProcessedFilename,
			&l.QRCount,
			&l.FillColor,
			&l.FillShape,
			&l.Opacity,
			&l.OutputFormat,
			&l.ProcessedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
