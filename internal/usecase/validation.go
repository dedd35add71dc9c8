package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/covercredit/cover-credit-backend/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Optional leading +, then 8-16 digits/spaces/hyphens.
var phonePattern = regexp.MustCompile(`^[+\d][\d\s\-]{7,15}$`)

const (
	maxNamePart    = 50
	maxFullName    = 100
	maxMessage     = 1000
	maxCallNote    = 2000
	maxReminderMsg = 500
	maxCity        = 100
	maxDetailValue = 500
	maxDetails     = 30
)

func ValidateContactInput(input SubmitContactInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errors = append(errors, ValidationError{"firstName", "is required"})
	} else if len(input.FirstName) > maxNamePart {
		errors = append(errors, ValidationError{"firstName", "is too long"})
	}
	if len(input.LastName) > maxNamePart {
		errors = append(errors, ValidationError{"lastName", "is too long"})
	}
	errors = append(errors, validatePhone(input.Phone)...)
	errors = append(errors, validateOptionalEmail(input.Email)...)
	if input.Interest != "" && !entity.IsValidContactInterest(input.Interest) {
		errors = append(errors, ValidationError{"interest", "is not a known interest"})
	}
	if len(input.Message) > maxMessage {
		errors = append(errors, ValidationError{"message", "is too long (max 1000 chars)"})
	}

	return errors
}

func ValidateBookingInput(input SubmitBookingInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > maxFullName {
		errors = append(errors, ValidationError{"name", "is too long"})
	}
	errors = append(errors, validatePhone(input.Phone)...)
	errors = append(errors, validateOptionalEmail(input.Email)...)
	if strings.TrimSpace(input.Department) == "" {
		errors = append(errors, ValidationError{"department", "is required"})
	} else if !entity.IsValidDepartment(input.Department) {
		errors = append(errors, ValidationError{"department", "is not a known department"})
	}
	if len(input.City) > maxCity {
		errors = append(errors, ValidationError{"city", "is too long"})
	}
	if len(input.Notes) > maxMessage {
		errors = append(errors, ValidationError{"notes", "is too long (max 1000 chars)"})
	}
	if len(input.Details) > maxDetails {
		errors = append(errors, ValidationError{"details", "has too many entries"})
	} else {
		for k, v := range input.Details {
			if len(v) > maxDetailValue {
				errors = append(errors, ValidationError{"details." + k, "is too long"})
			}
		}
	}

	return errors
}

func ValidateBlogInput(input SaveBlogPostInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Title) == "" {
		errors = append(errors, ValidationError{"title", "is required"})
	} else if len(input.Title) > 200 {
		errors = append(errors, ValidationError{"title", "is too long"})
	}
	if strings.TrimSpace(input.Excerpt) == "" {
		errors = append(errors, ValidationError{"excerpt", "is required"})
	} else if len(input.Excerpt) > 400 {
		errors = append(errors, ValidationError{"excerpt", "is too long"})
	}
	if strings.TrimSpace(input.Content) == "" {
		errors = append(errors, ValidationError{"content", "is required"})
	}
	if !entity.IsValidBlogCategory(input.Category) {
		errors = append(errors, ValidationError{"category", "is not a known category"})
	}

	return errors
}

func validatePhone(phone string) []ValidationError {
	if strings.TrimSpace(phone) == "" {
		return []ValidationError{{"phone", "is required"}}
	}
	if !phonePattern.MatchString(phone) {
		return []ValidationError{{"phone", "must be a valid phone number"}}
	}
	return nil
}

func validateOptionalEmail(email string) []ValidationError {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []ValidationError{{"email", "is invalid"}}
	}
	return nil
}
