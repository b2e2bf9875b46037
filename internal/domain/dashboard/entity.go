// internal/domain/dashboard/entity.go
package dashboard

// Stats are the headline counters on the admin landing page. They are
// recomputed from a fresh snapshot on every request; the dataset is
// hundreds of records, not millions, so correctness beats incremental
// bookkeeping.
type Stats struct {
	UpcomingVisitors  int `json:"upcoming_visitors"`
	PendingQuotes     int `json:"pending_quotes"`
	InProgress        int `json:"in_progress"`
	ActiveBlackouts   int `json:"active_blackouts"`
	UnresolvedRecords int `json:"unresolved_records"`

	// Customers per pipeline stage, by each customer's latest record.
	ByStage map[string]int `json:"by_stage"`
}
