// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"sync"
	"time"

	"github.com/oxbow-labs/btindex/co"
)

// lockTimeout is the deadline readLockDB/writeLockDB give a single
// acquisition attempt before reporting a deadlock to the caller.
const lockTimeout = 80 * time.Millisecond

// rwlock is a reader/writer lock whose acquisition can be bounded by a
// deadline, used as the sole deadlock-detection mechanism: a goroutine
// that cannot acquire the lock within the deadline assumes it is
// contending with a transaction that holds it and gives up rather than
// blocking forever.
type rwlock struct {
	mu      sync.Mutex
	readers int
	writer  bool
	sig     co.Signal
}

// readLockDB attempts to acquire the lock in shared mode before deadline,
// reporting false on timeout.
func (l *rwlock) readLockDB(deadline time.Time) bool {
	for {
		l.mu.Lock()
		if !l.writer {
			l.readers++
			l.mu.Unlock()
			return true
		}
		w := l.sig.NewWaiter()
		l.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		select {
		case <-w.C():
		case <-time.After(remaining):
			return false
		}
	}
}

// writeLockDB attempts to acquire the lock in exclusive mode before
// deadline, reporting false on timeout.
func (l *rwlock) writeLockDB(deadline time.Time) bool {
	for {
		l.mu.Lock()
		if !l.writer && l.readers == 0 {
			l.writer = true
			l.mu.Unlock()
			return true
		}
		w := l.sig.NewWaiter()
		l.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		select {
		case <-w.C():
		case <-time.After(remaining):
			return false
		}
	}
}

// tryWriteLockNow attempts to acquire the exclusive lock without waiting,
// used for the read-to-write upgrade path: the read side has already been
// released, and a blocking attempt here could deadlock against another
// goroutine doing the same upgrade.
func (l *rwlock) tryWriteLockNow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.writer && l.readers == 0 {
		l.writer = true
		return true
	}
	return false
}

func (l *rwlock) readUnlock() {
	l.mu.Lock()
	l.readers--
	empty := l.readers == 0
	l.mu.Unlock()
	if empty {
		l.sig.Broadcast()
	}
}

func (l *rwlock) writeUnlock() {
	l.mu.Lock()
	l.writer = false
	l.mu.Unlock()
	l.sig.Broadcast()
}
