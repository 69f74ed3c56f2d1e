// internal/store/locks.go
//
// Per-session exclusive locks. Two concurrent moves against the same
// session are strictly ordered; different sessions never share a lock,
// so no caller ever holds two of these at once.

package store

import "sync"

// SessionLocks hands out one mutex per session id.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionLocks constructs an empty lock table.
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the exclusive lock for id and returns its unlock func.
func (l *SessionLocks) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
