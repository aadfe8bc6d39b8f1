package secondary

import "gitlab.com/examproctor-2025.net/internal/domain"

// QuestionCatalog is read-only and loaded once at startup
type QuestionCatalog interface {
	FindQuestion(id string) (*domain.Question, bool)
	All() []*domain.Question
}
