// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "btindex"

// promMeter backs Counter/CounterVec/Histogram with real Prometheus
// collectors registered against a private registry, so two instances in the
// same process never collide on metric names.
type promMeter struct {
	registry *prometheus.Registry

	mu       sync.Mutex
	counters map[string]*promCounter
	vecs     map[string]*promCounterVec
	hists    map[string]*promHistogram
}

func newPromMeter() *promMeter {
	return &promMeter{
		registry: prometheus.NewRegistry(),
		counters: make(map[string]*promCounter),
		vecs:     make(map[string]*promCounterVec),
		hists:    make(map[string]*promHistogram),
	}
}

func (m *promMeter) counter(name string) Counter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.counters[name]; ok {
		return c
	}
	c := &promCounter{Counter: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
	})}
	m.registry.MustRegister(c.Counter)
	m.counters[name] = c
	return c
}

func (m *promMeter) counterVec(name string, labels []string) CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.vecs[name]; ok {
		return v
	}
	v := &promCounterVec{CounterVec: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
	}, labels)}
	m.registry.MustRegister(v.CounterVec)
	m.vecs[name] = v
	return v
}

func (m *promMeter) histogram(name string, buckets []float64) Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.hists[name]; ok {
		return h
	}
	h := &promHistogram{Histogram: prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Buckets:   buckets,
	})}
	m.registry.MustRegister(h.Histogram)
	m.hists[name] = h
	return h
}

func (m *promMeter) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type promCounter struct {
	prometheus.Counter
}

func (c *promCounter) Add(n int64) { c.Counter.Add(float64(n)) }

type promCounterVec struct {
	*prometheus.CounterVec
}

func (v *promCounterVec) AddWithLabel(n int64, labels map[string]string) {
	v.CounterVec.With(prometheus.Labels(labels)).Add(float64(n))
}

type promHistogram struct {
	prometheus.Histogram
}

func (h *promHistogram) Observe(n int64) { h.Histogram.Observe(float64(n)) }
