package validators

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

const StrongPasswordTag = "strong_password"

// IsStrongPassword requires at least one lower case letter, one upper case
// letter, one digit and one symbol. Length is checked separately.
func IsStrongPassword(password string) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func StrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

const (
	PasswordBytesTag = "password_bytes"
	// MaxPasswordBytes is what bcrypt accepts; longer input is rejected
	// rather than truncated.
	MaxPasswordBytes = 72
)

func FitsPasswordHash(password string) bool {
	return len(password) <= MaxPasswordBytes
}

func PasswordBytes(fl validator.FieldLevel) bool {
	return FitsPasswordHash(fl.Field().String())
}
