// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes the counters and timers the registry and the
// transaction layer report to: lock-acquisition wait time, deadlock counts,
// insert/delete/commit/abort totals. It defaults to a noop backend so tests
// and library callers never need a live Prometheus registry, and switches to
// a real one on InitializePrometheusMetrics.
package metrics

import (
	"net/http"
	"sync"
)

// Counter is a monotonically increasing value.
type Counter interface {
	Add(n int64)
}

// CounterVec is a counter broken down by a fixed set of label values.
type CounterVec interface {
	AddWithLabel(n int64, labels map[string]string)
}

// Histogram observes a distribution of values (used here for lock-wait and
// operation latencies, measured in nanoseconds).
type Histogram interface {
	Observe(n int64)
}

type meterBackend interface {
	counter(name string) Counter
	counterVec(name string, labels []string) CounterVec
	histogram(name string, buckets []float64) Histogram
	handler() http.Handler
}

var (
	mu    sync.Mutex
	meter meterBackend = defaultNoopMeter()
)

// GetCounter returns (creating on first use) the named counter.
func GetCounter(name string) Counter {
	mu.Lock()
	defer mu.Unlock()
	return meter.counter(name)
}

// GetCounterVec returns (creating on first use) the named labeled counter.
func GetCounterVec(name string, labels []string) CounterVec {
	mu.Lock()
	defer mu.Unlock()
	return meter.counterVec(name, labels)
}

// GetHistogram returns (creating on first use) the named histogram.
func GetHistogram(name string, buckets []float64) Histogram {
	mu.Lock()
	defer mu.Unlock()
	return meter.histogram(name, buckets)
}

// InitializePrometheusMetrics switches the package to a real Prometheus
// backend. Safe to call once at process startup; a noop backend is used
// until then (and forever, in tests that never call this).
func InitializePrometheusMetrics() {
	mu.Lock()
	defer mu.Unlock()
	meter = newPromMeter()
}

// HTTPHandler exposes the current backend's metrics (Prometheus text
// format, or a 404 while running with the noop backend).
func HTTPHandler() http.Handler {
	mu.Lock()
	defer mu.Unlock()
	return meter.handler()
}

// reset restores the noop backend. Nothing in the module calls it.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	meter = defaultNoopMeter()
}
