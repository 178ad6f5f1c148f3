package utils

import (
	"sync"
)

// OptionalLock is a sync.RWMutex that can be switched off. Objects created with an externally
// synchronized flag disable it, and every call becomes a no-op.
type OptionalLock struct {
	mutex   sync.RWMutex
	enabled bool
}

// NewOptionalLock returns a lock that only locks when enabled is set
func NewOptionalLock(enabled bool) *OptionalLock {
	return &OptionalLock{enabled: enabled}
}

func (l *OptionalLock) Enabled() bool {
	return l.enabled
}

func (l *OptionalLock) Lock() {
	if l.enabled {
		l.mutex.Lock()
	}
}

func (l *OptionalLock) Unlock() {
	if l.enabled {
		l.mutex.Unlock()
	}
}

func (l *OptionalLock) RLock() {
	if l.enabled {
		l.mutex.RLock()
	}
}

func (l *OptionalLock) RUnlock() {
	if l.enabled {
		l.mutex.RUnlock()
	}
}
