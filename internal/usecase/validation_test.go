package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneAcceptsCommonFormats(t *testing.T) {
	valid := []string{
		"+919876543210",
		"9876543210",
		"+44 7911 123456",
		"98765-43210",
	}
	for _, phone := range valid {
		assert.Empty(t, validatePhone(phone), "expected %q to be valid", phone)
	}
}

func TestValidatePhoneRejectsGarbage(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"12345",            // too short
		"call me maybe",    // letters
		"+9198765432101234567", // too long
		"98765@43210",
	}
	for _, phone := range invalid {
		assert.NotEmpty(t, validatePhone(phone), "expected %q to be rejected", phone)
	}
}

func TestValidateContactInputRequiredFields(t *testing.T) {
	errs := ValidateContactInput(SubmitContactInput{})

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "phone")
}

func TestValidateContactInputValid(t *testing.T) {
	errs := ValidateContactInput(SubmitContactInput{
		FirstName: "Priya",
		LastName:  "Sharma",
		Phone:     "+919876543210",
		Email:     "priya@example.com",
		Interest:  "Health Insurance",
		Message:   "Looking for a family floater plan",
	})
	assert.Empty(t, errs)
}

func TestValidateContactInputUnknownInterest(t *testing.T) {
	errs := ValidateContactInput(SubmitContactInput{
		FirstName: "Priya",
		Phone:     "+919876543210",
		Interest:  "Time Travel Insurance",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "interest", errs[0].Field)
}

func TestValidateContactInputEmptyInterestAllowed(t *testing.T) {
	// The form sends no interest when the visitor skips the dropdown;
	// the entity defaults it to "Other".
	errs := ValidateContactInput(SubmitContactInput{
		FirstName: "Priya",
		Phone:     "+919876543210",
	})
	assert.Empty(t, errs)
}

func TestValidateContactInputMessageTooLong(t *testing.T) {
	errs := ValidateContactInput(SubmitContactInput{
		FirstName: "Priya",
		Phone:     "+919876543210",
		Message:   strings.Repeat("x", 1001),
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "message", errs[0].Field)
}

func TestValidateBookingInputRequiredFields(t *testing.T) {
	errs := ValidateBookingInput(SubmitBookingInput{})

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "department")
}

func TestValidateBookingInputUnknownDepartment(t *testing.T) {
	errs := ValidateBookingInput(SubmitBookingInput{
		Name:       "Rahul Verma",
		Phone:      "9876543210",
		Department: "astrology",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "department", errs[0].Field)
}

func TestValidateBookingInputValid(t *testing.T) {
	errs := ValidateBookingInput(SubmitBookingInput{
		Name:       "Rahul Verma",
		Phone:      "9876543210",
		Email:      "rahul@example.com",
		City:       "Pune",
		Department: "loan",
		Details:    map[string]string{"loanAmount": "500000", "loanType": "home"},
	})
	assert.Empty(t, errs)
}

func TestValidateBookingInputBadEmail(t *testing.T) {
	errs := ValidateBookingInput(SubmitBookingInput{
		Name:       "Rahul Verma",
		Phone:      "9876543210",
		Email:      "not-an-email",
		Department: "loan",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
}

func TestValidateBookingInputDetailValueTooLong(t *testing.T) {
	errs := ValidateBookingInput(SubmitBookingInput{
		Name:       "Rahul Verma",
		Phone:      "9876543210",
		Department: "health",
		Details:    map[string]string{"notes": strings.Repeat("x", 501)},
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "details.notes", errs[0].Field)
}
