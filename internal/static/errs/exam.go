package errs

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrAlreadySubmitted  = errors.New("exam already submitted")
	ErrNotStarted        = errors.New("exam not started")
	ErrTimeExpired       = errors.New("time expired")
	ErrAlreadyRegistered = errors.New("you have already attempted the quiz")
	ErrInvalidInput      = errors.New("invalid input")
)

var (
	ErrQuestionNotFound    = errors.New("question not found")
	ErrNotCodingQuestion   = errors.New("question has no test cases")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ErrInternal marks storage failures and processes that could not be spawned
var ErrInternal = errors.New("internal error")
