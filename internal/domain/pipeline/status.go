// internal/domain/pipeline/status.go
package pipeline

// Status is the lifecycle label attached to a visit or enquiry.
// Transitions are unrestricted: operators must be able to correct
// mis-clicks or revisit a not_interested lead, so any value may follow
// any other. The system never auto-advances a status.
type Status string

const (
	StatusNew           Status = "new"
	StatusQuoted        Status = "quoted"
	StatusInProgress    Status = "in_progress"
	StatusCompleted     Status = "completed"
	StatusNotInterested Status = "not_interested"
)

// All returns the statuses in intended progression order.
func All() []Status {
	return []Status{StatusNew, StatusQuoted, StatusInProgress, StatusCompleted, StatusNotInterested}
}

// Valid reports whether s is one of the enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusQuoted, StatusInProgress, StatusCompleted, StatusNotInterested:
		return true
	}
	return false
}

// Resolved reports whether the dashboard treats s as a closed outcome.
// No status is structurally terminal; even completed may be reopened.
func (s Status) Resolved() bool {
	return s == StatusCompleted || s == StatusNotInterested
}
