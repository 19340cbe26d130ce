package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizdesk-service/internal/domain"
)

// HistoryRecorder persists submission snapshots to Postgres.
type HistoryRecorder struct {
	pool *pgxpool.Pool
}

func NewHistoryRecorder(pool *pgxpool.Pool) *HistoryRecorder {
	return &HistoryRecorder{pool: pool}
}

func (r *HistoryRecorder) AppendHistory(ctx context.Context, userID string, record domain.HistoryRecord) error {
	snapshot, err := json.Marshal(record.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO histories (user_id, group_id, snapshot, submitted_at) VALUES ($1, $2, $3, $4)`,
		userID, record.GroupID, snapshot, record.SubmittedAt)
	if err != nil {
		return fmt.Errorf("%w: append history: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *HistoryRecorder) ListHistory(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT group_id, snapshot, submitted_at FROM histories WHERE user_id=$1 ORDER BY submitted_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list history: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var (
			record domain.HistoryRecord
			raw    []byte
		)
		if err := rows.Scan(&record.GroupID, &raw, &record.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if err := json.Unmarshal(raw, &record.Snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
