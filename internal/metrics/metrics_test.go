package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/raysh454/mycv/internal/metrics"
)

func TestManager_ObserveRequest_CountsByLabels(t *testing.T) {
	t.Parallel()
	m := metrics.NewManager()

	m.ObserveRequest("GET", "/skills", 200, 12*time.Millisecond)
	m.ObserveRequest("GET", "/skills", 200, 3*time.Millisecond)
	m.ObserveRequest("DELETE", "/skills/{id}", 0, time.Millisecond)

	count, err := testutil.GatherAndCount(m.Registry(), "mycv_client_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 label sets, got %d", count)
	}
}

func TestManager_RecordFailureAndDownload(t *testing.T) {
	t.Parallel()
	m := metrics.NewManager(metrics.WithNamespace("test"), metrics.WithSubsystem("api"))

	m.RecordFailure("client")
	m.RecordFailure("client")
	m.RecordFailure("network")
	m.RecordDownload(2048)

	count, err := testutil.GatherAndCount(m.Registry(), "test_api_request_failures_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 failure kinds, got %d", count)
	}
	count, err = testutil.GatherAndCount(m.Registry(), "test_api_downloads_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected downloads counter, got %d", count)
	}
}

func TestManager_SeparateRegistries(t *testing.T) {
	t.Parallel()
	// Two managers must not collide on registration.
	a := metrics.NewManager()
	b := metrics.NewManager()
	if a.Registry() == b.Registry() {
		t.Fatal("expected distinct registries")
	}
}
