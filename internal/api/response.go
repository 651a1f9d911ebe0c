package api

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"jobportal-front/internal/store"
)

// ErrMalformedResponse is returned when a response body is not the expected
// JSON envelope.
var ErrMalformedResponse = errors.New("api: malformed response body")

// Response is the envelope every user API endpoint answers with.
type Response struct {
	Success bool        `mapstructure:"success"`
	Message string      `mapstructure:"message"`
	User    *store.User `mapstructure:"user"`
}

// Error is returned when the API rejected a request or reported failure.
// Message is the server-provided message and may be empty.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// decodeResponse reads the {success, message} envelope. The user object is
// decoded in a second pass so a missing or odd user field never hides the
// outcome or the server message.
func decodeResponse(body []byte) (*Response, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, ErrMalformedResponse
	}
	user, hasUser := raw["user"]
	delete(raw, "user")

	r := new(Response)
	if err := weakDecode(raw, r); err != nil {
		return nil, errors.Wrap(ErrMalformedResponse, err.Error())
	}
	if hasUser {
		r.User = decodeUser(user)
	}
	return r, nil
}

// decodeUser returns nil when input is not a user object.
func decodeUser(input interface{}) *store.User {
	if _, ok := input.(map[string]interface{}); !ok {
		return nil
	}
	u := new(store.User)
	if err := weakDecode(input, u); err != nil {
		return nil
	}
	return u
}

func weakDecode(input, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return errors.Wrap(err, "api: creating decoder")
	}
	return decoder.Decode(input)
}
