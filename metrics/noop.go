// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"
)

// noopMeter keeps metrics in-process so tests can assert on them, but never
// touches Prometheus. It is the default backend.
type noopMeter struct {
	mu       sync.Mutex
	counters map[string]*noopCounter
	vecs     map[string]*noopCounterVec
	hists    map[string]*noopHistogram
}

func defaultNoopMeter() *noopMeter {
	return &noopMeter{
		counters: make(map[string]*noopCounter),
		vecs:     make(map[string]*noopCounterVec),
		hists:    make(map[string]*noopHistogram),
	}
}

func (m *noopMeter) counter(name string) Counter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.counters[name]; ok {
		return c
	}
	c := &noopCounter{}
	m.counters[name] = c
	return c
}

func (m *noopMeter) counterVec(name string, _ []string) CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.vecs[name]; ok {
		return v
	}
	v := &noopCounterVec{byLabel: make(map[string]*int64)}
	m.vecs[name] = v
	return v
}

func (m *noopMeter) histogram(name string, _ []float64) Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.hists[name]; ok {
		return h
	}
	h := &noopHistogram{}
	m.hists[name] = h
	return h
}

func (m *noopMeter) handler() http.Handler {
	return http.NotFoundHandler()
}

type noopCounter struct{ v int64 }

func (c *noopCounter) Add(n int64) { atomic.AddInt64(&c.v, n) }

// Value returns the current total. Nothing in the module calls it.
func (c *noopCounter) Value() int64 { return atomic.LoadInt64(&c.v) }

type noopCounterVec struct {
	mu      sync.Mutex
	byLabel map[string]*int64
}

func (v *noopCounterVec) AddWithLabel(n int64, labels map[string]string) {
	key := labelKey(labels)
	v.mu.Lock()
	defer v.mu.Unlock()
	p, ok := v.byLabel[key]
	if !ok {
		var zero int64
		p = &zero
		v.byLabel[key] = p
	}
	atomic.AddInt64(p, n)
}

type noopHistogram struct {
	mu    sync.Mutex
	count int64
	sum   int64
}

func (h *noopHistogram) Observe(n int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += n
}

func labelKey(labels map[string]string) string {
	s := ""
	for k, v := range labels {
		s += k + "=" + v + ";"
	}
	return s
}
