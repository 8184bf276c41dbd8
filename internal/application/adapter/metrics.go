package adapter

import "time"

// MetricsRecorder receives operational counters from the use cases.
type MetricsRecorder interface {
	// ObserveAIRequest records one call to the language model.
	ObserveAIRequest(operation, outcome string, duration time.Duration)

	// IncLedgerMutation counts a ledger change ("add" or "remove").
	IncLedgerMutation(operation string)

	// IncPersistFailure counts a failed save of the transaction collection.
	IncPersistFailure()
}

// NopMetrics is a MetricsRecorder that discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveAIRequest(string, string, time.Duration) {}
func (NopMetrics) IncLedgerMutation(string)                       {}
func (NopMetrics) IncPersistFailure()                             {}
