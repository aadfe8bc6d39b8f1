package domain

// QuestionType discriminates MCQ and coding questions
type QuestionType string

const (
	QuestionTypeMCQ    QuestionType = "mcq"
	QuestionTypeCoding QuestionType = "coding"
)

// Question is one catalog entry. Answer and TestCases are never sent to candidates.
type Question struct {
	ID           string       `yaml:"id" json:"id"`
	Section      string       `yaml:"section" json:"section"`
	Type         QuestionType `yaml:"type" json:"type"`
	Number       int          `yaml:"number" json:"number"`
	Text         string       `yaml:"question" json:"question"`
	Options      []string     `yaml:"options" json:"options,omitempty"`
	Answer       *int         `yaml:"answer" json:"-"`
	Language     string       `yaml:"language" json:"language,omitempty"`
	SampleInput  string       `yaml:"sample_input" json:"sampleInput,omitempty"`
	SampleOutput string       `yaml:"sample_output" json:"sampleOutput,omitempty"`
	TestCases    []TestCase   `yaml:"test_cases" json:"-"`
	StarterCode  string       `yaml:"starter_code" json:"starterCode,omitempty"`
	Marks        int          `yaml:"marks" json:"marks"`
}

func (q *Question) IsCoding() bool {
	return q.Type == QuestionTypeCoding
}

func (q *Question) IsMCQ() bool {
	return q.Type == QuestionTypeMCQ
}
