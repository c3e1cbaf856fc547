package store

import "sync"

// Memory is an in-process Store. It backs the --ephemeral flag and tests.
type Memory struct {
	mu     sync.Mutex
	rec    Record
	writes []Record
}

// NewMemory returns a Memory store seeded with rec.
func NewMemory(rec Record) *Memory {
	return &Memory{rec: rec}
}

func (m *Memory) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.rec, nil
}

func (m *Memory) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec = rec
	m.writes = append(m.writes, rec)

	return nil
}

func (m *Memory) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec.Token = ""
	m.rec.TokenOwnerBaseURL = ""
	m.writes = append(m.writes, m.rec)

	return nil
}

// Writes returns every record state written so far, in order.
func (m *Memory) Writes() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Record(nil), m.writes...)
}
