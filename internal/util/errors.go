package util

import "errors"

// Sentinel errors for the service layer. Controllers map these to response
// codes with errors.Is; services never translate them into HTTP themselves.
//
// ErrQuizNotFound and ErrForbidden are intentionally distinguishable: a
// missing quiz answers 404 while someone else's quiz answers 403, which
// confirms existence to a caller who guesses a valid id. That trade-off is
// inherited from the original product behavior and kept so owners can tell a
// broken link from a permissions problem.
var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotPublished   = errors.New("quiz not published")
	ErrForbidden          = errors.New("permission denied")
	ErrAttemptNotFound    = errors.New("attempt not found")
)

// ValidationError reports a request payload that fails the quiz shape rules
// (option counts, correct-option counts, name length). Always raised before
// anything is persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
