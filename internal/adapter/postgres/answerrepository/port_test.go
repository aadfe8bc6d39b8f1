package answerrepository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/adapter/logging"
	"gitlab.com/examproctor-2025.net/internal/adapter/postgres"
	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

func TestAnswerUpsertLastWriteWins(t *testing.T) {
	url := os.Getenv("EXAM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("EXAM_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := postgres.Open(ctx, &config.PostgresConfig{Url: url})
	require.NoError(t, err)
	schema := "exam_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	require.NoError(t, postgres.Migrate(ctx, db, schema))
	t.Cleanup(func() {
		_, _ = db.Exec("DROP SCHEMA IF EXISTS " + schema + " CASCADE")
		_ = db.Close()
	})

	repo := New(db, logging.NewNopLogger(), schema)
	now := time.Now()
	require.NoError(t, repo.Upsert(ctx, &domain.Answer{RollNumber: "R1", QuestionID: "q1", Value: domain.OptionAnswer(1), UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &domain.Answer{RollNumber: "R1", QuestionID: "q1", Value: domain.OptionAnswer(2), UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &domain.Answer{RollNumber: "R1", QuestionID: "c1", Value: domain.CodeAnswer("print(1)"), UpdatedAt: now}))

	answers, err := repo.ListByRollNumber(ctx, "R1")
	require.NoError(t, err)
	require.Len(t, answers, 2)
	require.Equal(t, "c1", answers[0].QuestionID)
	require.Equal(t, "print(1)", *answers[0].Value.Code)
	require.Equal(t, 2, *answers[1].Value.Option)
}
