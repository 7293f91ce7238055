package session

import "sync"

// Store owns the current token pair for one authenticated session. The HTTP
// client reads it on every outbound request and writes it after a successful
// refresh exchange; login and logout are the other writers.
//
// Stores are explicit, injectable objects rather than process-wide state so
// tests and multi-account tooling can hold isolated sessions.
type Store interface {
	// Get returns the current token pair (zero value when logged out).
	Get() Tokens

	// Set replaces the current token pair.
	Set(Tokens)

	// Clear drops all credentials and notifies OnClear subscribers.
	Clear()

	// OnClear registers a callback invoked after every Clear. The HTTP client
	// clears the store when a refresh exchange fails, so this is where an
	// application hangs its navigate-to-login behaviour.
	OnClear(func())
}

// MemoryStore is a process-local Store guarded by a mutex. Safe for use by
// concurrent in-flight requests.
type MemoryStore struct {
	mu      sync.Mutex
	tokens  Tokens
	onClear []func()
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

func (s *MemoryStore) Set(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.tokens = Tokens{}
	callbacks := make([]func(), len(s.onClear))
	copy(callbacks, s.onClear)
	s.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may call back into the store.
	for _, fn := range callbacks {
		fn()
	}
}

func (s *MemoryStore) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}
