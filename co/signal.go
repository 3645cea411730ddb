// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Signal is a re-armable broadcast condition: every Waiter created before a
// Broadcast observes it immediately; waiters created after wait for the next
// one. Used by the registry's rwlock to wake goroutines waiting for the
// lock without a dedicated condition variable per listener.
type Signal struct {
	lock sync.Mutex
	ch   chan struct{}
}

// NewWaiter returns a Waiter that will fire on the next Broadcast. A
// Broadcast that happened before NewWaiter is not observed.
func (s *Signal) NewWaiter() Waiter {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return Waiter{s.ch}
}

// Broadcast wakes all current waiters and arms a fresh channel for future
// NewWaiter calls.
func (s *Signal) Broadcast() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	close(s.ch)
	s.ch = nil
}

// Waiter observes a single Signal broadcast.
type Waiter struct {
	c chan struct{}
}

// C returns the channel that closes when the signal it was created from
// broadcasts.
func (w Waiter) C() <-chan struct{} {
	return w.c
}
