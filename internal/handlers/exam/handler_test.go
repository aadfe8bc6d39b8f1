package exam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/adapter/logging"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

// fakeExam records the calls it receives and returns canned results
type fakeExam struct {
	calls       []string
	lastSession string
	lastStdin   string
	lastAnswer  domain.AnswerValue
	lastReason  string
	err         error
}

func (f *fakeExam) record(name, sessionID string) {
	f.calls = append(f.calls, name)
	f.lastSession = sessionID
}

func (f *fakeExam) Register(_ context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	f.record("register", "")
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RegisterResponse{SessionID: "s1", RollNumber: req.RollNumber}, nil
}

func (f *fakeExam) GetSession(_ context.Context, sessionID string) (*domain.SessionView, error) {
	f.record("session", sessionID)
	if f.err != nil {
		return nil, f.err
	}
	ms := int64(1000)
	return &domain.SessionView{Session: &domain.Session{SessionID: sessionID}, RemainingMs: &ms}, nil
}

func (f *fakeExam) Start(_ context.Context, sessionID string) (*domain.StartResult, error) {
	f.record("start", sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.StartResult{
		Started:   true,
		StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Remaining: 15 * time.Minute,
		Resumed:   true,
	}, nil
}

func (f *fakeExam) Questions(_ context.Context, sessionID string) ([]*domain.Question, error) {
	f.record("questions", sessionID)
	return []*domain.Question{{ID: "q1", Type: domain.QuestionTypeMCQ}}, f.err
}

func (f *fakeExam) RecordAnswer(_ context.Context, sessionID, _ string, value domain.AnswerValue) error {
	f.record("answer", sessionID)
	f.lastAnswer = value
	return f.err
}

func (f *fakeExam) RunAdhoc(_ context.Context, sessionID, _, _, stdin string) (domain.ExecutionResult, error) {
	f.record("adhoc", sessionID)
	f.lastStdin = stdin
	return domain.SuccessResult("hi"), f.err
}

func (f *fakeExam) RunTests(_ context.Context, sessionID, questionID, _, _ string) (*domain.Verdict, error) {
	f.record("tests", sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Verdict{QuestionID: questionID, Total: 3, Passed: 2}, nil
}

func (f *fakeExam) JudgeSubmission(_ context.Context, sessionID, questionID, _, _ string) (*domain.Verdict, error) {
	f.record("judge", sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Verdict{QuestionID: questionID, Total: 1, Passed: 1}, nil
}

func (f *fakeExam) RecordViolation(_ context.Context, sessionID, reason string) (*domain.ViolationResult, error) {
	f.record("violation", sessionID)
	f.lastReason = reason
	return &domain.ViolationResult{Violations: 1, Reason: reason, Recorded: true}, f.err
}

func (f *fakeExam) Submit(_ context.Context, sessionID, reason string) (*domain.SubmitResult, error) {
	f.record("submit", sessionID)
	f.lastReason = reason
	return &domain.SubmitResult{Submitted: true, Score: 7}, f.err
}

func newRouter(svc *fakeExam) *mux.Router {
	router := mux.NewRouter()
	NewHandler(svc, logging.NewNopLogger()).RegisterRoutes(router)
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRegister(t *testing.T) {
	svc := &fakeExam{}
	rec, body := do(t, newRouter(svc), http.MethodPost, "/api/register",
		`{"name":"Ada","year":"2","section":"a","rollNumber":"r1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "s1", body["sessionId"])
	require.Equal(t, "r1", body["rollNumber"])
}

func TestRegisterConflict(t *testing.T) {
	svc := &fakeExam{err: errs.ErrAlreadyRegistered}
	rec, body := do(t, newRouter(svc), http.MethodPost, "/api/register", `{"name":"Ada"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, errs.ErrAlreadyRegistered.Error(), body["error"])
}

func TestMalformedBody(t *testing.T) {
	svc := &fakeExam{}
	rec, _ := do(t, newRouter(svc), http.MethodPost, "/api/answer/s1", `{"questionId":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, svc.calls)
}

func TestStartReportsRemainingMilliseconds(t *testing.T) {
	svc := &fakeExam{}
	rec, body := do(t, newRouter(svc), http.MethodPost, "/api/start/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "s1", svc.lastSession)
	require.Equal(t, true, body["started"])
	require.Equal(t, true, body["resumed"])
	require.EqualValues(t, 15*60*1000, body["remaining"])
}

func TestStartErrors(t *testing.T) {
	cases := map[error]int{
		errs.ErrSessionNotFound:  http.StatusNotFound,
		errs.ErrAlreadySubmitted: http.StatusForbidden,
		errs.ErrTimeExpired:      http.StatusForbidden,
	}
	for err, status := range cases {
		rec, _ := do(t, newRouter(&fakeExam{err: err}), http.MethodPost, "/api/start/s1", "")
		require.Equal(t, status, rec.Code, err.Error())
	}
}

func TestSessionView(t *testing.T) {
	rec, body := do(t, newRouter(&fakeExam{}), http.MethodGet, "/api/session/s9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "s9", body["sessionId"])
	require.EqualValues(t, 1000, body["remainingTime"])
}

func TestQuestionsNotStarted(t *testing.T) {
	rec, _ := do(t, newRouter(&fakeExam{err: errs.ErrNotStarted}), http.MethodGet, "/api/questions/s1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnswerDecodesOptionAndCode(t *testing.T) {
	svc := &fakeExam{}
	router := newRouter(svc)

	rec, body := do(t, router, http.MethodPost, "/api/answer/s1", `{"questionId":"q1","answer":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["saved"])
	require.NotNil(t, svc.lastAnswer.Option)
	require.Equal(t, 2, *svc.lastAnswer.Option)

	rec, _ = do(t, router, http.MethodPost, "/api/answer/s1", `{"questionId":"c1","answer":"int main(){}"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastAnswer.Code)
	require.Equal(t, "int main(){}", *svc.lastAnswer.Code)
}

func TestRunWithInputIsAdhoc(t *testing.T) {
	svc := &fakeExam{}
	router := newRouter(svc)

	rec, body := do(t, router, http.MethodPost, "/api/run/s1", `{"language":"c","code":"x","input":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"adhoc"}, svc.calls)
	require.Equal(t, "", svc.lastStdin)
	require.Equal(t, "hi", body["output"])

	rec, body = do(t, router, http.MethodPost, "/api/run/s1", `{"questionId":"c1","language":"c","code":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"adhoc", "tests"}, svc.calls)
	require.EqualValues(t, 2, body["passed"])
	require.EqualValues(t, 3, body["total"])
}

func TestSubmitCodeUnsupportedLanguage(t *testing.T) {
	rec, _ := do(t, newRouter(&fakeExam{err: errs.ErrUnsupportedLanguage}), http.MethodPost,
		"/api/submit-code/s1", `{"questionId":"c1","language":"cobol","code":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViolationAndSubmit(t *testing.T) {
	svc := &fakeExam{}
	router := newRouter(svc)

	rec, body := do(t, router, http.MethodPost, "/api/violation/s1", `{"reason":"tab switch"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "tab switch", svc.lastReason)
	require.Equal(t, false, body["autoSubmitted"])
	require.EqualValues(t, 1, body["violations"])

	rec, body = do(t, router, http.MethodPost, "/api/submit/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.ReasonManual, svc.lastReason)
	require.Equal(t, true, body["submitted"])
	require.EqualValues(t, 7, body["score"])
}

func TestInternalErrorIsOpaque(t *testing.T) {
	rec, body := do(t, newRouter(&fakeExam{err: errs.ErrInternal}), http.MethodPost, "/api/submit-code/s1", `{}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "server error", body["error"])
}
