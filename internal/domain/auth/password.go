package auth

import "unicode"

// ValidatePassword enforces the account password policy: at least 8
// characters with at least one digit and one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	hasDigit := false
	hasSpecial := false
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			hasSpecial = true
		}
	}
	if !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}
