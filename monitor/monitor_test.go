// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package monitor_test

import (
	"testing"

	"github.com/aristanetworks/goimmutable/monitor"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gaugesByName(t *testing.T, c prometheus.Collector) map[string]float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 16)
	go func() {
		c.Collect(ch)
		close(ch)
	}()
	out := map[string]float64{}
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			t.Fatalf("Write: %v", err)
		}
		name := ""
		for _, l := range pb.GetLabel() {
			if l.GetName() == "name" {
				name = l.GetValue()
			}
		}
		v := pb.GetGauge().GetValue() + pb.GetCounter().GetValue()
		out[name] = v
	}
	return out
}

func TestCollectionStatsReportsRegisteredSizes(t *testing.T) {
	stats := monitor.NewCollectionStats()
	size := 3
	stats.Register("widgets", func() int { return size })

	got := gaugesByName(t, stats)
	if got["widgets"] != 3 {
		t.Fatalf("widgets = %v, want 3", got["widgets"])
	}

	size = 7
	got = gaugesByName(t, stats)
	if got["widgets"] != 7 {
		t.Fatalf("widgets = %v, want 7 (closure should be called fresh each Collect)", got["widgets"])
	}
}

func TestCollectionStatsUnregister(t *testing.T) {
	stats := monitor.NewCollectionStats()
	stats.Register("widgets", func() int { return 1 })
	stats.Unregister("widgets")

	got := gaugesByName(t, stats)
	if _, ok := got["widgets"]; ok {
		t.Fatal("expected widgets to be gone after Unregister")
	}
}

func TestRetryCounterIncrements(t *testing.T) {
	rc := monitor.NewRetryCounter("mylist")
	rc.Inc()
	rc.Inc()

	got := gaugesByName(t, rc)
	if got["mylist"] != 2 {
		t.Fatalf("mylist retries = %v, want 2", got["mylist"])
	}
}
