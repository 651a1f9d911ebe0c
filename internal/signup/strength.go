package signup

import (
	"github.com/nbutton23/zxcvbn-go"
)

// Strength is a password strength estimate for the hint under the password
// input. It never blocks a submission.
type Strength struct {
	Score int
	Label string
}

var strengthLabels = [...]string{"Very weak", "Weak", "Fair", "Strong", "Very strong"}

// PasswordStrength scores password from 0 to 4. Other draft values can be
// passed in userInputs so that passwords derived from them score lower.
func PasswordStrength(password string, userInputs ...string) Strength {
	if password == "" {
		return Strength{}
	}
	score := zxcvbn.PasswordStrength(password, userInputs).Score
	if score < 0 {
		score = 0
	}
	if score >= len(strengthLabels) {
		score = len(strengthLabels) - 1
	}
	return Strength{Score: score, Label: strengthLabels[score]}
}
