package concurrency

import (
	"sync"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
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

// HeatLock returns the mutex serialising snapshot writes for one heat
func (lm *LockManager) HeatLock(heat domain.HeatKey) *sync.Mutex {
	return lm.GetLock("heat:" + heat.String())
}

// WithHeat runs fn while holding the heat's lock
func (lm *LockManager) WithHeat(heat domain.HeatKey, fn func() error) error {
	mu := lm.HeatLock(heat)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}
