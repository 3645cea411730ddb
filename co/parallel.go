// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "runtime"

// Parallel runs a batch of functions fed through enqueue, spread over
// GOMAXPROCS worker goroutines, and returns a channel that closes once all
// of them have returned.
func Parallel(enqueue func(queue chan<- func())) <-chan struct{} {
	queue := make(chan func())
	done := make(chan struct{})

	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers < 1 {
		nWorkers = 1
	}

	var wg Goes
	for i := 0; i < nWorkers; i++ {
		wg.Go(func() {
			for f := range queue {
				f()
			}
		})
	}

	go func() {
		enqueue(queue)
		close(queue)
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	return done
}
