package domain

// TestCase is one hidden input/expected-output pair of a coding question
type TestCase struct {
	Input    string `yaml:"input" json:"input"`
	Expected string `yaml:"expected" json:"expected"`
}
