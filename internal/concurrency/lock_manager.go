package concurrency

import (
	"sync"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// TryAcquire takes the named lock without blocking. It returns the release
// function and true, or nil and false when the lock is already held.
func (lm *LockManager) TryAcquire(key string) (func(), bool) {
	mu := lm.GetLock(key)
	if !mu.TryLock() {
		return nil, false
	}
	return mu.Unlock, true
}

// Held reports whether the named lock is currently taken
func (lm *LockManager) Held(key string) bool {
	mu := lm.GetLock(key)
	if mu.TryLock() {
		mu.Unlock()
		return false
	}
	return true
}
