package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory keeps the blob in process, encoded exactly as the other backends store it
type Memory struct {
	mu      sync.RWMutex
	raw     []byte
	batchID uuid.UUID
	savedAt time.Time
}

var _ Storage = (*Memory)(nil)

// NewMemory returns an empty in process store
func NewMemory() *Memory { return &Memory{} }

// Load decodes the saved blob
func (m *Memory) Load(_ context.Context) (Blob, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.raw == nil {
		return Blob{}, false, nil
	}
	recs, err := decode(m.raw)
	if err != nil {
		return Blob{}, true, err
	}
	return Blob{BatchID: m.batchID, SavedAt: m.savedAt, Records: recs}, true, nil
}

// Save replaces the blob
func (m *Memory) Save(_ context.Context, b Blob) error {
	raw, err := encode(b.Records)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.raw, m.batchID, m.savedAt = raw, b.BatchID, b.SavedAt
	m.mu.Unlock()
	return nil
}

// Clear drops the blob
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.raw, m.batchID, m.savedAt = nil, uuid.Nil, time.Time{}
	m.mu.Unlock()
	return nil
}

// SetRaw stores raw bytes as the blob, bypassing encoding
// it exists for seeding and for exercising corrupt blob handling
func (m *Memory) SetRaw(raw []byte) {
	m.mu.Lock()
	m.raw = append([]byte(nil), raw...)
	m.mu.Unlock()
}
