package repository

import (
	"context"

	"qrcut/internal/model"
)

// ProcessLogRepository is the append-only store of processing outcomes.
type ProcessLogRepository interface {
	// Append inserts all entries atomically: either every row is stored or none is.
	// IDs and timestamps are assigned by the store and returned in input order.
	Append(ctx context.Context, entries []model.ProcessLog) ([]model.ProcessLog, error)

	// Recent returns up to limit rows, newest first.
	Recent(ctx context.Context, limit int) ([]model.ProcessLog, error)
}
