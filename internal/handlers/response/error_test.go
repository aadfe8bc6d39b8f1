package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errs.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("judge: %w", errs.ErrQuestionNotFound), http.StatusNotFound},
		{errs.ErrAlreadySubmitted, http.StatusForbidden},
		{errs.ErrTimeExpired, http.StatusForbidden},
		{errs.ErrNotStarted, http.StatusBadRequest},
		{fmt.Errorf("%w: go", errs.ErrUnsupportedLanguage), http.StatusBadRequest},
		{errs.ErrNotCodingQuestion, http.StatusBadRequest},
		{errs.ErrAlreadyRegistered, http.StatusConflict},
		{errs.ErrTokenInvalid, http.StatusUnauthorized},
		{fmt.Errorf("%w: db down", errs.ErrInternal), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, FromError(tc.err).StatusCode, tc.err.Error())
	}
}

func TestFromErrorHidesInternalText(t *testing.T) {
	msg := FromError(fmt.Errorf("%w: password=hunter2", errs.ErrInternal))
	assert.Equal(t, "server error", msg.Message)

	msg = FromError(fmt.Errorf("%w: python", errs.ErrUnsupportedLanguage))
	assert.Equal(t, errs.ErrUnsupportedLanguage.Error(), msg.Message)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, FromError(errs.ErrAlreadyRegistered))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "you have already attempted the quiz", body["error"])
}
