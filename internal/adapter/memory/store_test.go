package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Sessions()

	require.NoError(t, repo.Create(ctx, &domain.Session{SessionID: "s1", RollNumber: "R1"}))
	require.ErrorIs(t, repo.Create(ctx, &domain.Session{SessionID: "s2", RollNumber: "R1"}), errs.ErrAlreadyRegistered)

	got, err := repo.GetByRollNumber(ctx, "R1")
	require.NoError(t, err)
	require.Equal(t, "s1", got.SessionID)

	missing, err := repo.GetBySessionID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	start := time.Now()
	ok, err := repo.SetStartTime(ctx, "s1", start)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.SetStartTime(ctx, "s1", start.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, ok)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.True(t, active[0].StartTime.Equal(start))

	ok, err = repo.MarkSubmitted(ctx, "s1", 7, start.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.MarkSubmitted(ctx, "s1", 99, start.Add(2*time.Minute))
	require.NoError(t, err)
	require.False(t, ok)

	got, err = repo.GetBySessionID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 7, got.Score)
	require.Equal(t, domain.SessionStateSubmitted, got.State())

	_, ok, err = repo.IncrementViolations(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMarkSubmittedIsExclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Sessions()
	require.NoError(t, repo.Create(ctx, &domain.Session{SessionID: "s1", RollNumber: "R1"}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			ok, err := repo.MarkSubmitted(ctx, "s1", score, time.Now())
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, 1, winners)
}

func TestAnswersLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Answers()

	require.NoError(t, repo.Upsert(ctx, &domain.Answer{RollNumber: "R1", QuestionID: "q1", Value: domain.OptionAnswer(1)}))
	require.NoError(t, repo.Upsert(ctx, &domain.Answer{RollNumber: "R1", QuestionID: "q1", Value: domain.OptionAnswer(3)}))
	require.NoError(t, repo.Upsert(ctx, &domain.Answer{RollNumber: "R2", QuestionID: "q1", Value: domain.OptionAnswer(0)}))

	answers, err := repo.ListByRollNumber(ctx, "R1")
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.Equal(t, 3, *answers[0].Value.Option)
}

func TestViolationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Violations()

	require.NoError(t, repo.Append(ctx, &domain.Violation{RollNumber: "R1", Reason: "first"}))
	require.NoError(t, repo.Append(ctx, &domain.Violation{RollNumber: "R1", Reason: "second"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "second", list[0].Reason)
}
