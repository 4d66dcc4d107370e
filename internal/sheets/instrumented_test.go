package sheets

import (
	"context"
	"testing"

	"frontdesk-backend/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWithMetricsCountsOutcomes(t *testing.T) {
	store := WithMetrics(seededStore())
	ok := metrics.StoreCallsTotal.WithLabelValues(TablePatient, "read", "ok")
	failed := metrics.StoreCallsTotal.WithLabelValues("Missing", "read", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	if _, err := store.ReadAll(context.Background(), TablePatient); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if _, err := store.ReadAll(context.Background(), "Missing"); err == nil {
		t.Fatal("expected unknown worksheet to fail")
	}

	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Errorf("expected 1 ok read, got %v", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("expected 1 failed read, got %v", got)
	}
}
