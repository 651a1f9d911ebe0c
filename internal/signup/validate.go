package signup

import (
	"strings"

	"github.com/badoux/checkmail"
)

// MinPasswordLength matches the hint shown in the password placeholder.
const MinPasswordLength = 6

// Validate checks the draft the way the backend is expected to. It is only
// applied when the form runs in strict mode; by default the draft is sent
// as is and the API decides.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.FullName) == "" {
		return &ValidationError{Field: FieldFullName, Message: "Full name is required"}
	}
	if err := checkmail.ValidateFormat(d.Email); err != nil {
		return &ValidationError{Field: FieldEmail, Message: "Enter a valid email address"}
	}
	if strings.TrimSpace(d.PhoneNumber) == "" {
		return &ValidationError{Field: FieldPhoneNumber, Message: "Phone number is required"}
	}
	if len([]rune(d.Password)) < MinPasswordLength {
		return &ValidationError{Field: FieldPassword, Message: "Password must be at least 6 characters"}
	}
	if d.Role == "" {
		return &ValidationError{Field: FieldRole, Message: "Select a role"}
	}
	return nil
}
