package domain

import (
	"time"
)

// SessionState is the lifecycle state of an exam attempt
type SessionState string

const (
	SessionStateRegistered SessionState = "REGISTERED"
	SessionStateStarted    SessionState = "STARTED"
	SessionStateSubmitted  SessionState = "SUBMITTED"
)

// Session is one candidate's single exam attempt
type Session struct {
	SessionID      string     `db:"session_id" json:"sessionId"`
	Name           string     `db:"name" json:"name"`
	Year           string     `db:"year" json:"year"`
	Section        string     `db:"section" json:"section"`
	RollNumber     string     `db:"roll_number" json:"rollNumber"`
	StartTime      *time.Time `db:"start_time" json:"startTime"`
	EndTime        *time.Time `db:"end_time" json:"endTime"`
	Submitted      bool       `db:"submitted" json:"submitted"`
	ViolationCount int        `db:"violation_count" json:"violationCount"`
	Score          int        `db:"score" json:"score"`
	RegisteredAt   time.Time  `db:"registered_at" json:"registeredAt"`
}

// State derives the lifecycle state from the persisted fields
func (s *Session) State() SessionState {
	switch {
	case s.Submitted:
		return SessionStateSubmitted
	case s.StartTime != nil:
		return SessionStateStarted
	default:
		return SessionStateRegistered
	}
}

// Remaining returns the time left before the deadline. It is zero for sessions that were never started.
func (s *Session) Remaining(duration time.Duration, now time.Time) time.Duration {
	if s.StartTime == nil {
		return 0
	}
	return Remaining(*s.StartTime, duration, now)
}

// Remaining computes duration - (now - startTime)
func Remaining(startTime time.Time, duration time.Duration, now time.Time) time.Duration {
	return duration - now.Sub(startTime)
}

type SessionTable struct {
	SessionID      string
	Name           string
	Year           string
	Section        string
	RollNumber     string
	StartTime      string
	EndTime        string
	Submitted      string
	ViolationCount string
	Score          string
	RegisteredAt   string
}

func GetSessionTable() SessionTable {
	return SessionTable{
		SessionID:      "session_id",
		Name:           "name",
		Year:           "year",
		Section:        "section",
		RollNumber:     "roll_number",
		StartTime:      "start_time",
		EndTime:        "end_time",
		Submitted:      "submitted",
		ViolationCount: "violation_count",
		Score:          "score",
		RegisteredAt:   "registered_at",
	}
}

func (SessionTable) TableName() string {
	return "students"
}

func (t SessionTable) Columns() []string {
	return []string{
		t.SessionID, t.Name, t.Year, t.Section, t.RollNumber, t.StartTime,
		t.EndTime, t.Submitted, t.ViolationCount, t.Score, t.RegisteredAt,
	}
}

// SessionView is a session as its candidate sees it. RemainingMs is nil until the exam starts.
type SessionView struct {
	*Session
	RemainingMs *int64 `json:"remainingTime"`
}
