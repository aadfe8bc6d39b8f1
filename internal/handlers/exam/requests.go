package exam

import (
	"time"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

type AnswerRequest struct {
	QuestionID string             `json:"questionId"`
	Answer     domain.AnswerValue `json:"answer"`
}

type AnswerResponse struct {
	Saved bool `json:"saved"`
}

// RunRequest runs code once when Input is present, otherwise against the question's test cases
type RunRequest struct {
	QuestionID string  `json:"questionId"`
	Language   string  `json:"language"`
	Code       string  `json:"code"`
	Input      *string `json:"input"`
}

type SubmitCodeRequest struct {
	QuestionID string `json:"questionId"`
	Language   string `json:"language"`
	Code       string `json:"code"`
}

type ViolationRequest struct {
	Reason string `json:"reason"`
}

type StartResponse struct {
	Started   bool      `json:"started"`
	StartTime time.Time `json:"startTime"`
	Remaining int64     `json:"remaining"`
	Resumed   bool      `json:"resumed"`
}
