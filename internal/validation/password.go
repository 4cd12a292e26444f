package validation

import (
	"fmt"
	"unicode"
)

// MinAdminPasswordLength - минимальная длина пароля администратора.
const MinAdminPasswordLength = 10

// ValidatePassword проверяет пароль администратора перед хешированием:
// не короче 10 символов, есть заглавные и строчные буквы и цифры.
func ValidatePassword(password string) error {
	if utf8Len(password) < MinAdminPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinAdminPasswordLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasNumber = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("пароль должен содержать хотя бы одну заглавную букву")
	case !hasLower:
		return fmt.Errorf("пароль должен содержать хотя бы одну строчную букву")
	case !hasNumber:
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}
	return nil
}

func utf8Len(s string) int {
	return len([]rune(s))
}
