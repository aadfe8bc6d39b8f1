package domain

// CaseResult is the outcome of one test case
type CaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Output   string `json:"output"`
	Error    string `json:"error,omitempty"`
	Passed   bool   `json:"passed"`
}

// Verdict is the result of running one submission against all of a question's test cases
type Verdict struct {
	QuestionID string       `json:"questionId"`
	Total      int          `json:"total"`
	Passed     int          `json:"passed"`
	Results    []CaseResult `json:"results"`
}

// AllPassed reports whether every case passed
func (v *Verdict) AllPassed() bool {
	return v.Total > 0 && v.Passed == v.Total
}
