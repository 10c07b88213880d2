package core

import "context"

// TurnLock serializes conversation turns using a buffered channel
type TurnLock struct {
	sem chan struct{}
}

// NewTurnLock creates a new turn lock
func NewTurnLock() *TurnLock {
	return &TurnLock{
		sem: make(chan struct{}, 1),
	}
}

// TryLock attempts to acquire the lock without blocking
func (l *TurnLock) TryLock() bool {
	select {
	case l.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// LockWithContext attempts to acquire the lock, respecting context cancellation
func (l *TurnLock) LockWithContext(ctx context.Context) bool {
	select {
	case l.sem <- struct{}{}:
		return true
	case <-ctx.Done():
		return false // Context expired before getting lock
	}
}

// Unlock releases the lock
func (l *TurnLock) Unlock() {
	select {
	case <-l.sem:
	default:
		// Already unlocked, avoid panic
	}
}
