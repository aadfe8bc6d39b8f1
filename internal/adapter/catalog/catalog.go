// Package catalog loads the read-only exam question catalog
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gitlab.com/examproctor-2025.net/internal/core/ports/secondary"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

//go:embed questions.yaml
var embeddedQuestions []byte

var _ secondary.QuestionCatalog = (*Catalog)(nil)

type document struct {
	Questions []*domain.Question `yaml:"questions"`
}

// Catalog keeps questions in file order and indexes them by id
type Catalog struct {
	ordered []*domain.Question
	byID    map[string]*domain.Question
}

// Load reads the catalog from path, or the embedded catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedQuestions)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode question catalog: %w", err)
	}

	c := &Catalog{
		ordered: make([]*domain.Question, 0, len(doc.Questions)),
		byID:    make(map[string]*domain.Question, len(doc.Questions)),
	}
	for i, q := range doc.Questions {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question #%d: %w", i+1, err)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		c.ordered = append(c.ordered, q)
		c.byID[q.ID] = q
	}
	return c, nil
}

func validate(q *domain.Question) error {
	if q == nil || q.ID == "" {
		return fmt.Errorf("id is required")
	}
	switch q.Type {
	case domain.QuestionTypeMCQ:
		if q.Answer == nil || *q.Answer < 0 || *q.Answer >= len(q.Options) {
			return fmt.Errorf("%s: answer must index one of %d options", q.ID, len(q.Options))
		}
	case domain.QuestionTypeCoding:
		if q.Language == "" {
			return fmt.Errorf("%s: language is required", q.ID)
		}
	default:
		return fmt.Errorf("%s: unknown question type %q", q.ID, q.Type)
	}
	return nil
}

func (c *Catalog) FindQuestion(id string) (*domain.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// All returns the questions in catalog order
func (c *Catalog) All() []*domain.Question {
	out := make([]*domain.Question, len(c.ordered))
	copy(out, c.ordered)
	return out
}
