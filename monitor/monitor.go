// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package monitor exposes Prometheus metrics for the persistent
// collections in this module: the current size of any registered
// container, and how often atomicupdate.Update had to retry under CAS
// contention. It follows the same shape as cmd/ocprometheus's
// collector — a mutex-protected map feeding Describe/Collect — scaled
// down to the handful of gauges and counters this module needs.
package monitor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// CollectionStats is a prometheus.Collector reporting the current size
// of every container registered with it. Containers register a
// sizeFunc closure once, at construction; Collect calls it fresh every
// scrape, so the reported gauge is always current without the
// collector needing to observe individual mutations.
type CollectionStats struct {
	mu   sync.Mutex
	desc *prometheus.Desc
	// sizes maps a registered container's name to a closure returning
	// its current element count.
	sizes map[string]func() int
}

// NewCollectionStats returns a CollectionStats ready for registration
// with a prometheus.Registry.
func NewCollectionStats() *CollectionStats {
	return &CollectionStats{
		desc: prometheus.NewDesc(
			"goimmutable_collection_size",
			"Current number of elements in a registered persistent collection.",
			[]string{"name"}, nil,
		),
		sizes: make(map[string]func() int),
	}
}

// Register associates name with sizeFunc, a closure that returns the
// current size of some collection — typically a reference cell's
// current snapshot's Len(). Registering the same name twice replaces
// the previous closure.
func (c *CollectionStats) Register(name string, sizeFunc func() int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes[name] = sizeFunc
}

// Unregister removes name, if present.
func (c *CollectionStats) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sizes, name)
}

// Describe implements prometheus.Collector.
func (c *CollectionStats) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *CollectionStats) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, sizeFunc := range c.sizes {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(sizeFunc()), name)
	}
}

// RetryCounter counts how many times a compare-and-swap retry loop
// (atomicupdate.Update and its derived helpers) had to re-apply a
// transformer because another writer won the race first. A high retry
// rate against a given Ref signals contention, not incorrectness: every
// retry still converges to a linearizable result.
type RetryCounter struct {
	counter prometheus.Counter
}

// NewRetryCounter returns a RetryCounter labeled name, ready for
// registration with a prometheus.Registry.
func NewRetryCounter(name string) *RetryCounter {
	return &RetryCounter{
		counter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goimmutable_cas_retries_total",
			Help: "Total number of compare-and-swap retries observed by an atomicupdate.Ref.",
			ConstLabels: prometheus.Labels{
				"name": name,
			},
		}),
	}
}

// Inc records one CAS retry.
func (r *RetryCounter) Inc() { r.counter.Inc() }

// Describe implements prometheus.Collector.
func (r *RetryCounter) Describe(ch chan<- *prometheus.Desc) { r.counter.Describe(ch) }

// Collect implements prometheus.Collector.
func (r *RetryCounter) Collect(ch chan<- prometheus.Metric) { r.counter.Collect(ch) }
