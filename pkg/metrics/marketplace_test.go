package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestMarketplaceMetricsExportsCountersAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMarketplaceMetrics(reg)

	m.ObserveMatch("agents_for_job", 120*time.Millisecond, 7)
	m.IncAssignment("agent", "ok")
	m.IncAssignment("agent", "conflict")
	m.IncJobTransition("assigned")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchHistogramSum(mfs, "matching_duration_seconds", "direction", "agents_for_job"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "matching_candidates", "direction", "agents_for_job"); err != nil {
		t.Fatalf("fetch candidates: %v", err)
	} else if got != 7 {
		t.Fatalf("expected candidates sum 7, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "assignments_total", "outcome", "conflict"); err != nil {
		t.Fatalf("fetch assignments: %v", err)
	} else if got != 1 {
		t.Fatalf("expected conflict=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "job_status_transitions_total", "to", "assigned"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected assigned=1, got %f", got)
	}
}

func TestMarketplaceMetricsNilReceiverIsSafe(t *testing.T) {
	var m *MarketplaceMetrics
	m.ObserveMatch("jobs_for_agent", time.Second, 1)
	m.IncAssignment("ppo", "ok")
	m.IncJobTransition("completed")

	unregistered := NewMarketplaceMetrics(nil)
	unregistered.ObserveMatch("jobs_for_agent", time.Second, 1)
	unregistered.IncAssignment("ppo", "ok")
	unregistered.IncJobTransition("completed")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
