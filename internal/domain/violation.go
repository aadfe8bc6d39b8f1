package domain

import "time"

// Violation is an append-only proctoring anomaly report
type Violation struct {
	RollNumber string    `db:"roll_number" json:"rollNumber"`
	Reason     string    `db:"reason" json:"reason"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
}

type ViolationTable struct {
	RollNumber string
	Reason     string
	Timestamp  string
}

func GetViolationTable() ViolationTable {
	return ViolationTable{
		RollNumber: "roll_number",
		Reason:     "reason",
		Timestamp:  "timestamp",
	}
}

func (ViolationTable) TableName() string {
	return "violations"
}

// ViolationResult is what recording one violation produced. Reason is the
// reported reason, or the submission reason when AutoSubmitted is set.
type ViolationResult struct {
	Violations    int    `json:"violations"`
	AutoSubmitted bool   `json:"autoSubmitted"`
	Reason        string `json:"reason,omitempty"`
	// Recorded is false for the no-op on a submitted session
	Recorded bool `json:"-"`
}
