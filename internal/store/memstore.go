package store

import (
	"sync"

	"draw-guess-be/internal/game"
)

// MemoryStore keeps active room sessions keyed by room code. Rooms live only
// for the process lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*game.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*game.Session{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*game.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.rooms[code]
	return s, ok
}

func (m *MemoryStore) SaveRoom(s *game.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[s.ID] = s
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// Rooms snapshots the current sessions, in no particular order.
func (m *MemoryStore) Rooms() []*game.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Session, 0, len(m.rooms))
	for _, s := range m.rooms {
		out = append(out, s)
	}
	return out
}
