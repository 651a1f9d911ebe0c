package signup

import (
	"github.com/pkg/errors"

	"jobportal-front/internal/api"
)

// Role is the account type picked on the signup form.
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

// ParseRole accepts the two known roles. The empty string is the unset role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case "", RoleStudent, RoleRecruiter:
		return r, nil
	}
	return "", errors.Wrapf(ErrInvalidRole, "%q", s)
}

// Input names of the editable text fields.
const (
	FieldFullName    = "fullname"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
	FieldPassword    = "password"
	FieldRole        = "role"
)

// Draft is the unsaved content of the signup form.
type Draft struct {
	FullName     string
	Email        string
	PhoneNumber  string
	Password     string
	Role         Role
	ProfileImage api.FileSource
}

// with returns a copy of d with one field replaced.
func (d Draft) with(name, value string) (Draft, error) {
	switch name {
	case FieldFullName:
		d.FullName = value
	case FieldEmail:
		d.Email = value
	case FieldPhoneNumber:
		d.PhoneNumber = value
	case FieldPassword:
		d.Password = value
	case FieldRole:
		r, err := ParseRole(value)
		if err != nil {
			return d, err
		}
		d.Role = r
	default:
		return d, errors.Wrapf(ErrUnknownField, "%q", name)
	}
	return d, nil
}

func (d Draft) request() api.RegisterRequest {
	return api.RegisterRequest{
		FullName:    d.FullName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Password:    d.Password,
		Role:        string(d.Role),
		File:        d.ProfileImage,
	}
}
