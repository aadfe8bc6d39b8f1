package domain

import (
	"time"
)

// CodeSubmission is the persisted outcome of judging a candidate's code for one question
type CodeSubmission struct {
	RollNumber      string    `db:"roll_number" json:"rollNumber"`
	QuestionID      string    `db:"question_id" json:"questionId"`
	Code            string    `db:"code" json:"code"`
	Language        string    `db:"language" json:"language"`
	PassedTestCases int       `db:"passed_test_cases" json:"passedTestCases"`
	TotalTestCases  int       `db:"total_test_cases" json:"totalTestCases"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCodeSubmission creates a submission record from a verdict
func NewCodeSubmission(rollNumber, questionID, language, code string, verdict *Verdict) *CodeSubmission {
	return &CodeSubmission{
		RollNumber:      rollNumber,
		QuestionID:      questionID,
		Code:            code,
		Language:        language,
		PassedTestCases: verdict.Passed,
		TotalTestCases:  verdict.Total,
		UpdatedAt:       time.Now(),
	}
}

type CodeSubmissionTable struct {
	RollNumber      string
	QuestionID      string
	Code            string
	Language        string
	PassedTestCases string
	TotalTestCases  string
	UpdatedAt       string
}

func GetCodeSubmissionTable() CodeSubmissionTable {
	return CodeSubmissionTable{
		RollNumber:      "roll_number",
		QuestionID:      "question_id",
		Code:            "code",
		Language:        "language",
		PassedTestCases: "passed_test_cases",
		TotalTestCases:  "total_test_cases",
		UpdatedAt:       "updated_at",
	}
}

func (CodeSubmissionTable) TableName() string {
	return "coding_submissions"
}
