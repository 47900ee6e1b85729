package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFormMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFormMetrics(reg)

	m.ObserveAccepted("appointment")
	m.ObserveRejected("appointment", "email")
	m.ObserveRejected("appointment", "email")

	if got := testutil.ToFloat64(m.submissions.WithLabelValues("appointment", "rejected")); got != 2 {
		t.Fatalf("expected 2 rejected submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.rejections.WithLabelValues("appointment", "email")); got != 2 {
		t.Fatalf("expected 2 email rejections, got %v", got)
	}
}

func TestDirectoryMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDirectoryMetrics(reg)

	m.ObserveSearch("page", 0)
	m.ObserveSearch("page", 6)

	if got := testutil.ToFloat64(m.searches.WithLabelValues("page", "empty")); got != 1 {
		t.Fatalf("expected 1 empty search, got %v", got)
	}
	if got := testutil.ToFloat64(m.searches.WithLabelValues("page", "found")); got != 1 {
		t.Fatalf("expected 1 found search, got %v", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var f *FormMetrics
	f.ObserveAccepted("patient")
	f.ObserveRejected("patient", "age")

	var d *DirectoryMetrics
	d.ObserveSearch("api", 1)
}

func TestFormSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFormMetrics(reg)
	m.ObserveAccepted("appointment")
	m.ObserveAccepted("appointment")
	m.ObserveRejected("appointment", "phone")
	m.ObserveRejected("patient", "age")

	snap := FormSnapshot(reg)

	if got := snap["appointment"]; got.Accepted != 2 || got.Rejected != 1 {
		t.Fatalf("unexpected appointment counts: %+v", got)
	}
	if got := snap["patient"]; got.Accepted != 0 || got.Rejected != 1 {
		t.Fatalf("unexpected patient counts: %+v", got)
	}
}

func TestFormSnapshotEmptyRegistry(t *testing.T) {
	if snap := FormSnapshot(prometheus.NewRegistry()); len(snap) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
