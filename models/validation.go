package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	TitleMinLength       = 2
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors maps field names to messages and is returned when one
// or more fields fail validation.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, message := range e {
		parts = append(parts, field+": "+message)
	}
	return strings.Join(parts, "; ")
}

// ValidateTitle trims the raw title and checks its length bounds.
func ValidateTitle(raw string) (string, *ValidationError) {
	title := strings.TrimSpace(raw)
	if utf8.RuneCountInString(title) < TitleMinLength {
		return "", &ValidationError{Field: "title", Message: fmt.Sprintf("title must contain at least %d characters", TitleMinLength)}
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return "", &ValidationError{Field: "title", Message: fmt.Sprintf("title must not exceed %d characters", TitleMaxLength)}
	}
	return title, nil
}

// ValidateDescription trims the raw description. An empty or absent
// description is valid and normalizes to the empty string.
func ValidateDescription(raw string) (string, *ValidationError) {
	description := strings.TrimSpace(raw)
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		return "", &ValidationError{Field: "description", Message: fmt.Sprintf("description must not exceed %d characters", DescriptionMaxLength)}
	}
	return description, nil
}

// ValidatePriority checks membership in the priority enumeration.
func ValidatePriority(raw string) (Priority, *ValidationError) {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(raw), nil
	}
	return "", &ValidationError{Field: "priority", Message: "priority must be one of low, medium, high"}
}

// ValidatePasswordMatch checks that a registration password and its
// confirmation are identical. Strength policy is enforced separately by
// the auth service.
func ValidatePasswordMatch(password, confirm string) *ValidationError {
	if password != confirm {
		return &ValidationError{Field: "password_confirm", Message: "passwords do not match"}
	}
	return nil
}
