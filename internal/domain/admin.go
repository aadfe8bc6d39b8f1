package domain

// StudentAnswers is everything a candidate stored during their attempt
type StudentAnswers struct {
	Answers []*Answer         `json:"answers"`
	Coding  []*CodeSubmission `json:"coding"`
}
