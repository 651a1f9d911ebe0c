package signup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := Draft{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "5551234",
		Password:    "secret1",
		Role:        RoleStudent,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		desc  string
		edit  func(*Draft)
		field string
	}{
		{"blank name", func(d *Draft) { d.FullName = "  " }, FieldFullName},
		{"bad email", func(d *Draft) { d.Email = "ada@" }, FieldEmail},
		{"no phone", func(d *Draft) { d.PhoneNumber = "" }, FieldPhoneNumber},
		{"short password", func(d *Draft) { d.Password = "12345" }, FieldPassword},
		{"no role", func(d *Draft) { d.Role = "" }, FieldRole},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			d := valid
			c.edit(&d)

			var vErr *ValidationError
			require.True(t, errors.As(d.Validate(), &vErr))
			assert.Equal(t, c.field, vErr.Field)
			assert.NotEmpty(t, vErr.Message)
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	assert.Equal(t, Strength{}, PasswordStrength(""))

	weak := PasswordStrength("password")
	strong := PasswordStrength("correct-Horse-battery-staple-91!")
	assert.Less(t, weak.Score, strong.Score)
	assert.Equal(t, strengthLabels[weak.Score], weak.Label)
	assert.GreaterOrEqual(t, strong.Score, 3)

	assert.LessOrEqual(t, PasswordStrength("adalovelace", "adalovelace").Score, 1)
}
