package memory

import (
	"context"
	"sync"

	"quizdesk-service/internal/domain"
)

// HistoryRecorder keeps submission history in memory (tests/demos).
type HistoryRecorder struct {
	mu      sync.RWMutex
	records map[string][]domain.HistoryRecord

	// FailAppend, when set, makes AppendHistory fail with the given error.
	// Used to exercise the history-failure path in tests.
	FailAppend error
}

func NewHistoryRecorder() *HistoryRecorder {
	return &HistoryRecorder{records: make(map[string][]domain.HistoryRecord)}
}

func (r *HistoryRecorder) AppendHistory(_ context.Context, userID string, record domain.HistoryRecord) error {
	if r.FailAppend != nil {
		return r.FailAppend
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[userID] = append(r.records[userID], record)
	return nil
}

func (r *HistoryRecorder) ListHistory(_ context.Context, userID string) ([]domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.HistoryRecord, len(r.records[userID]))
	copy(out, r.records[userID])
	return out, nil
}
