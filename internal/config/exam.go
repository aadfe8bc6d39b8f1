package config

import (
	"time"
)

type ExamConfig struct {
	Duration            time.Duration
	MaxViolations       int
	SubmitRetryMaxDelay time.Duration
	QuestionsFile       string
}

func NewExamConfig() *ExamConfig {
	return &ExamConfig{
		Duration:            getDurationEnv("EXAM_DURATION_MIN", time.Minute, 60),
		MaxViolations:       getIntEnv("MAX_VIOLATIONS", 3),
		SubmitRetryMaxDelay: getDurationEnv("SUBMIT_RETRY_MAX_ELAPSED_SEC", time.Second, 120),
		QuestionsFile:       getEnv("QUESTIONS_FILE", ""),
	}
}
