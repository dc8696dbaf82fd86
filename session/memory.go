package session

import "sync"

// MemoryStore is a thread-safe in-memory Store. Sessions are lost on
// restart; use BoltStore for the durable default.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Session)}
}

func (s *MemoryStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()
	return sess, ok
}

func (s *MemoryStore) Put(id string, sess Session) {
	s.mu.Lock()
	s.data[id] = sess
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}
