package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 30)
	require.Equal(t, "c_mcq_1", all[0].ID)

	q, ok := c.FindQuestion("c_code_1")
	require.True(t, ok)
	require.True(t, q.IsCoding())
	require.Equal(t, "c", q.Language)
	require.Len(t, q.TestCases, 3)
	require.Equal(t, "3628800", q.TestCases[2].Expected)

	mcq, ok := c.FindQuestion("c_mcq_2")
	require.True(t, ok)
	require.True(t, mcq.IsMCQ())
	require.NotNil(t, mcq.Answer)
	require.Equal(t, 2, *mcq.Answer)

	_, ok = c.FindQuestion("missing")
	require.False(t, ok)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
questions:
  - id: q1
    type: coding
    language: python
    test_cases:
      - input: "1"
        expected: "2"
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	q, ok := c.FindQuestion("q1")
	require.True(t, ok)
	require.Equal(t, domain.QuestionTypeCoding, q.Type)
	require.Equal(t, []domain.TestCase{{Input: "1", Expected: "2"}}, q.TestCases)
}

func TestParseRejectsInvalidCatalog(t *testing.T) {
	cases := map[string]string{
		"duplicate id":  "questions:\n  - {id: a, type: coding, language: c}\n  - {id: a, type: coding, language: c}\n",
		"bad answer":    "questions:\n  - {id: a, type: mcq, options: [x], answer: 4}\n",
		"unknown type":  "questions:\n  - {id: a, type: essay}\n",
		"missing id":    "questions:\n  - {type: mcq}\n",
		"not yaml list": "questions: 3\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}
