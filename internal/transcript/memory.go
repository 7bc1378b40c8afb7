package transcript

import (
	"context"
	"sync"

	"github.com/spurge/netica/internal/interview"
)

// MemoryStore keeps transcripts in process memory. Useful for tests and for
// serving evaluations without a database file.
type MemoryStore struct {
	mu      sync.Mutex
	order   map[string][]string
	entries map[string]map[string][]interview.Entry
}

var _ interview.TranscriptStore = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{
		order:   make(map[string][]string),
		entries: make(map[string]map[string][]interview.Entry),
	}
}

func (m *MemoryStore) Append(_ context.Context, candidateID, skill string, entry interview.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	groups, ok := m.entries[candidateID]
	if !ok {
		groups = make(map[string][]interview.Entry)
		m.entries[candidateID] = groups
	}

	if _, ok := groups[skill]; !ok {
		m.order[candidateID] = append(m.order[candidateID], skill)
	}
	groups[skill] = append(groups[skill], entry)

	return nil
}

func (m *MemoryStore) ReadAll(_ context.Context, candidateID string) ([]interview.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []interview.Entry
	for _, skill := range m.order[candidateID] {
		entries = append(entries, m.entries[candidateID][skill]...)
	}

	return entries, nil
}
