package admin

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/adapter/logging"
	"gitlab.com/examproctor-2025.net/internal/adapter/memory"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

func newTestService(t *testing.T) (*AdminService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewAdminService(store.Sessions(), store.Answers(), store.Submissions(), store.Violations(), logging.NewNopLogger())
	return svc, store
}

func TestExportCSV(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Sessions().Create(ctx, &domain.Session{
		SessionID: "a", RollNumber: "R1", Name: "Doe, Jane", Year: "2", Section: "A", RegisteredAt: base,
	}))
	require.NoError(t, store.Sessions().Create(ctx, &domain.Session{
		SessionID: "b", RollNumber: "R2", Name: "Sam", Year: "3", Section: "B", RegisteredAt: base.Add(time.Minute),
	}))
	_, err := store.Sessions().SetStartTime(ctx, "a", base.Add(time.Hour))
	require.NoError(t, err)
	_, err = store.Sessions().MarkSubmitted(ctx, "a", 12, base.Add(2*time.Hour))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Roll Number,Name,Year,Section,Score,Submitted,Start Time,End Time,Violations", lines[0])
	require.Equal(t, `R1,"Doe, Jane",2,A,12,true,2026-03-01T10:00:00Z,2026-03-01T11:00:00Z,0`, lines[1])
	require.Equal(t, "R2,Sam,3,B,0,false,,,0", lines[2])

	students, err := svc.ListStudents(ctx)
	require.NoError(t, err)
	require.Equal(t, "R2", students[0].RollNumber)
}

func TestAnswersFor(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Answers().Upsert(ctx, &domain.Answer{RollNumber: "R1", QuestionID: "q1", Value: domain.OptionAnswer(2)}))
	require.NoError(t, store.Submissions().Upsert(ctx, &domain.CodeSubmission{RollNumber: "R1", QuestionID: "c1", PassedTestCases: 1, TotalTestCases: 3}))

	got, err := svc.AnswersFor(ctx, " r1 ")
	require.NoError(t, err)
	require.Len(t, got.Answers, 1)
	require.Len(t, got.Coding, 1)

	_, err = svc.AnswersFor(ctx, "")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}
