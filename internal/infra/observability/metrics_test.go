package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.ObserveAIRequest("insight", "ok", 2*time.Second)
	m.ObserveAIRequest("insight", "ok", time.Second)
	m.ObserveAIRequest("insight", "AI_TIMEOUT", 0)
	m.IncLedgerMutation("add")
	m.IncPersistFailure()
	m.ObserveHTTPRequest("GET", "/api/v1/transactions", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.aiRequests.WithLabelValues("insight", "ok")); got != 2 {
		t.Errorf("ai ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.aiRequests.WithLabelValues("insight", "AI_TIMEOUT")); got != 1 {
		t.Errorf("ai timeout = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ledgerMutations.WithLabelValues("add")); got != 1 {
		t.Errorf("ledger add = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.persistFailures); got != 1 {
		t.Errorf("persist failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/transactions", "200")); got != 1 {
		t.Errorf("http requests = %v, want 1", got)
	}
}

func TestMetrics_LedgerSize(t *testing.T) {
	m := NewMetrics()
	size := 3
	m.RegisterLedgerSize(func() int { return size })

	count, err := testutil.GatherAndCount(m.Registry, "realty_ledger_transactions")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d series, want 1", count)
	}
}

func TestNewMetrics_Independent(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.IncPersistFailure()

	if got := testutil.ToFloat64(b.persistFailures); got != 0 {
		t.Errorf("registries share state: %v", got)
	}
}
