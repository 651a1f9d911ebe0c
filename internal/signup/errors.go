package signup

import (
	"github.com/pkg/errors"

	"jobportal-front/internal/api"
)

// FallbackMessage is shown when a failure carries no server message.
const FallbackMessage = "Something went wrong"

var (
	ErrUnknownField   = errors.New("signup: unknown field")
	ErrInvalidRole    = errors.New("signup: invalid role")
	ErrSubmitInFlight = errors.New("signup: a submission is already in progress")
	ErrUnexpected     = errors.New("signup: unexpected failure")
)

// ValidationError is returned by strict validation. Message is shown to the
// user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "signup: invalid " + e.Field + ": " + e.Message
}

// MessageFor reduces any submit failure to the text shown to the user. A
// server-provided message wins, then a validation message, then the
// fallback.
func MessageFor(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return FallbackMessage
}
