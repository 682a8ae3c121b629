package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column sizes of the text fields staff and visitors type in.
const (
	maxMemberFieldLength = 64
	maxTitleLength       = 120
	maxTagLength         = 64
	maxFileNameLength    = 255
)

var (
	ErrNotFound      = errors.New("not found")
	ErrQueryTooShort = errors.New("search query too short")
	ErrNoAnswers     = errors.New("question has no answers")
	ErrInvalidFile   = errors.New("invalid file")
	ErrNoGameModes   = errors.New("no game modes are configured")
	ErrWrongMode     = errors.New("game is not in the requested mode")
)

// ValidationError collects user-facing messages for rejected input. Nothing
// is written when one is returned.
type ValidationError struct {
	Messages []string
	Err      error
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// ValidationMessages unwraps the messages of a ValidationError.
func ValidationMessages(err error) ([]string, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Messages, true
	}
	return nil, false
}

func tooLong(value string, limit int) bool {
	return utf8.RuneCountInString(value) > limit
}

func tooLongMessage(field string, limit int) string {
	return fmt.Sprintf("%s must be at most %d characters.", field, limit)
}
