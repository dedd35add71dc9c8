package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact statuses
const (
	ContactStatusNew       = "new"
	ContactStatusContacted = "contacted"
	ContactStatusConverted = "converted"
	ContactStatusClosed    = "closed"
)

var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusContacted,
	ContactStatusConverted,
	ContactStatusClosed,
}

var ContactInterests = []string{
	"Health Insurance",
	"Life Insurance",
	"Bike Insurance",
	"Car Insurance",
	"Commercial Vehicle Insurance",
	"Loans",
	"Claim Support",
	"Other",
}

// CallNote is one entry of the append-only admin call log.
// Entries are never edited or removed after being appended.
type CallNote struct {
	Text    string    `json:"text"`
	AddedAt time.Time `json:"addedAt"`
}

type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Interest  string `json:"interest"`
	Message   string `json:"message,omitempty"`

	Status      string     `json:"status"`
	ContactedAt *time.Time `json:"contactedAt,omitempty"`
	AdminNotes  []CallNote `json:"adminNotes"`

	Source    string    `json:"source"`
	IPAddress string    `json:"ipAddress,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewContact applies the defaults of the contact form.
func NewContact(firstName, lastName, phone, email, interest, message, ip string) *Contact {
	if interest == "" {
		interest = "Other"
	}
	now := time.Now()
	return &Contact{
		ID:         uuid.New().String(),
		FirstName:  firstName,
		LastName:   lastName,
		Phone:      phone,
		Email:      email,
		Interest:   interest,
		Message:    message,
		Status:     ContactStatusNew,
		AdminNotes: []CallNote{},
		Source:     "contact-form",
		IPAddress:  ip,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func IsValidContactStatus(s string) bool {
	for _, v := range ContactStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidContactInterest(s string) bool {
	for _, v := range ContactInterests {
		if v == s {
			return true
		}
	}
	return false
}
