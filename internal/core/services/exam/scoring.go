package exam

import (
	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

// CodingPoints awards 2 for a full pass, 1 for a partial pass and 0 otherwise
func CodingPoints(passed, total int) int {
	switch {
	case total <= 0 || passed <= 0:
		return 0
	case passed >= total:
		return 2
	default:
		return 1
	}
}

// MCQPoints awards 1 when the stored option is the catalog's correct option
func MCQPoints(q *domain.Question, value domain.AnswerValue) int {
	if q == nil || !q.IsMCQ() || q.Answer == nil || value.Option == nil {
		return 0
	}
	if *value.Option == *q.Answer {
		return 1
	}
	return 0
}

// Score derives the total from persisted records only
func Score(catalog secondary.QuestionCatalog, answers []*domain.Answer, submissions []*domain.CodeSubmission) int {
	score := 0
	for _, a := range answers {
		q, ok := catalog.FindQuestion(a.QuestionID)
		if !ok {
			continue
		}
		score += MCQPoints(q, a.Value)
	}
	for _, sub := range submissions {
		q, ok := catalog.FindQuestion(sub.QuestionID)
		if !ok || !q.IsCoding() {
			continue
		}
		score += CodingPoints(sub.PassedTestCases, sub.TotalTestCases)
	}
	return score
}
