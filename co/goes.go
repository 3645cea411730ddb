// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co collects small goroutine coordination helpers (fan-in groups,
// a cancellable group, a bounded parallel runner, and a re-armable
// broadcast signal that the registry's lock uses for wakeups), without
// pulling in a task-runtime dependency.
package co

import "sync"

// Goes runs a batch of functions each in its own goroutine and lets the
// caller wait for all of them, or watch a channel that closes when done.
type Goes struct {
	wg   sync.WaitGroup
	once sync.Once
	done chan struct{}
}

// Go starts f in a new goroutine tracked by g.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine started via Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done returns a channel that's closed once every goroutine started via Go
// has returned.
func (g *Goes) Done() <-chan struct{} {
	g.once.Do(func() {
		g.done = make(chan struct{})
		go func() {
			g.wg.Wait()
			close(g.done)
		}()
	})
	return g.done
}
