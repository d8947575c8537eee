// Package store persists a board as a single durable key-value record.
// Backends live in sub packages; this package owns the record format.
package store

import (
	"context"
	"sync"

	"github.com/Makepad-fr/kanban/internal/model"
)

// DefaultKey is the record key the board is stored under.
const DefaultKey = "tasks"

// Persister loads and saves the whole board.
type Persister interface {
	// Load returns the stored board. found is false when nothing is stored yet.
	Load(ctx context.Context) (b model.Board, found bool, err error)
	// Save replaces the stored board.
	Save(ctx context.Context, b model.Board) error
}

// Memory keeps encoded records in process. It goes through the same codec
// as the durable backends, so what round-trips here round-trips there.
type Memory struct {
	mu      sync.Mutex
	key     string
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{key: DefaultKey, records: map[string][]byte{}}
}

func (m *Memory) Load(ctx context.Context) (model.Board, bool, error) {
	m.mu.Lock()
	raw, ok := m.records[m.key]
	m.mu.Unlock()
	if !ok {
		return model.Board{}, false, nil
	}
	b, err := Decode(raw)
	if err != nil {
		return model.Board{}, false, err
	}
	return b, true, nil
}

func (m *Memory) Save(ctx context.Context, b model.Board) error {
	raw, err := Encode(b)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[m.key] = raw
	m.mu.Unlock()
	return nil
}

// Raw exposes the stored bytes, nil when absent.
func (m *Memory) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[m.key]
}

// Put stores raw bytes as-is, bypassing the codec.
func (m *Memory) Put(raw []byte) {
	m.mu.Lock()
	m.records[m.key] = raw
	m.mu.Unlock()
}
