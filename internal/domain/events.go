package domain

import "time"

// Notification events pushed to a session's own channel or to the admin audience
const (
	EventAutoSubmit       = "exam:autosubmit"
	EventAdminUpdate      = "admin:update"
	EventViolationWarning = "violation:warning"
)

// Submission reasons
const (
	ReasonManual        = "manual"
	ReasonTimeLimit     = "time limit exceeded"
	ReasonMaxViolations = "maximum violations reached"
)

// AudienceRoom is the real-time room admin dashboards join
const AudienceRoom = "admin"

type AutoSubmitPayload struct {
	Reason string `json:"reason"`
	Score  int    `json:"score"`
}

type ViolationWarningPayload struct {
	Count  int    `json:"count"`
	Reason string `json:"reason"`
}

// Event is the envelope fanned out to real-time subscribers. An empty Room targets the admin audience.
type Event struct {
	Room    string      `json:"room"`
	Name    string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// SubmitResult is returned by every submission trigger
type SubmitResult struct {
	Submitted bool `json:"submitted"`
	Score     int  `json:"score"`
	// FirstSubmission is true only for the caller that performed the transition
	FirstSubmission bool `json:"-"`
}

// StartResult describes a started or resumed session
type StartResult struct {
	Started   bool          `json:"started"`
	StartTime time.Time     `json:"startTime"`
	Remaining time.Duration `json:"-"`
	Resumed   bool          `json:"resumed"`
}

// RemainingMs is the remaining time in milliseconds, as clients expect it
func (r StartResult) RemainingMs() int64 {
	return r.Remaining.Milliseconds()
}
