// Package journal records submission outcomes keyed by idempotency key.
package journal

import (
	"context"
	"errors"
	"sync"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

// ErrMissingKey is returned when a submission carries no idempotency key.
var ErrMissingKey = errors.New("idempotency key is required")

// Memory keeps submissions for the lifetime of the process.
type Memory struct {
	mu      sync.RWMutex
	records map[string]model.Submission
}

// NewMemory returns an empty in-process journal.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]model.Submission)}
}

// Lookup returns the latest submission recorded under key.
func (m *Memory) Lookup(ctx context.Context, key string) (model.Submission, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Submission{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.records[key]
	return s, ok, nil
}

// Record stores s, replacing any earlier submission with the same key.
func (m *Memory) Record(ctx context.Context, s model.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.IdempotencyKey == "" {
		return ErrMissingKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[s.IdempotencyKey] = s
	return nil
}
