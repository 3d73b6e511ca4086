package sweep

import "sync"

// Store persists encoded spectra behind a Cache. Implementations must
// be safe for concurrent use. Get reports a miss with found=false and
// a nil error; errors are reserved for genuine backend failures.
type Store interface {
	Get(key []byte) (value []byte, found bool, err error)
	Put(key, value []byte) error
	Close() error
}

// MemoryStore is an in-process Store for tests and single-run sweeps.
// The zero value is not usable; construct with NewMemoryStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns the value stored under key, if any.
func (s *MemoryStore) Get(key []byte) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put stores value under key, replacing any previous value.
func (s *MemoryStore) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[string(key)] = append([]byte(nil), value...)
	return nil
}

// Close releases the store. Further calls operate on an empty map.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

// Len reports how many entries the store holds.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
