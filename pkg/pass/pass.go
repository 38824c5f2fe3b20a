package pass

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Список типовых паролей, отклоняемых без проверки политики
var commonPasswords = map[string]struct{}{
	"password":    {},
	"123456":      {},
	"password123": {},
	"admin":       {},
	"qwerty":      {},
	"letmein":     {},
	"welcome":     {},
	"monkey":      {},
	"dragon":      {},
	"master":      {},
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePolicy - проверка пароля на соответствие политике:
// длина, регистр, цифры и отсутствие в списке типовых паролей
func ValidatePolicy(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password is too short")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return errors.New("password is too common")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain upper, lower case letters and digits")
	}

	return nil
}
