package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"team-project-api/internal/domain"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var validate = validator.New()

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > domain.MaxUsernameLength {
		return invalidf("username must be %d-%d characters", MinUsernameLength, domain.MaxUsernameLength)
	}
	if strings.TrimSpace(username) != username {
		return invalidf("username must not start or end with whitespace")
	}
	return nil
}

func validateEmail(email string) error {
	if utf8.RuneCountInString(email) > domain.MaxEmailLength {
		return invalidf("email must be at most %d characters", domain.MaxEmailLength)
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return invalidf("email is not a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalidf("password must be at least %d characters", MinPasswordLength)
	}
	// bcrypt 只使用前 72 字节
	if len(password) > 72 {
		return invalidf("password must be at most 72 bytes")
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalidf("title is required")
	}
	if utf8.RuneCountInString(title) > domain.MaxPostTitleLength {
		return invalidf("title must be at most %d characters", domain.MaxPostTitleLength)
	}
	return nil
}

func validateContent(field, content string) error {
	if strings.TrimSpace(content) == "" {
		return invalidf("%s is required", field)
	}
	return nil
}

func validateID(field string, id uint) error {
	if id == 0 {
		return invalidf("%s must be a positive integer", field)
	}
	return nil
}
