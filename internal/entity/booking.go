package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking statuses
const (
	BookingStatusNew       = "new"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "no-show"
)

var BookingStatuses = []string{
	BookingStatusNew,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusNoShow,
}

// Departments of the consultation booking form.
var Departments = []string{"loan", "health", "life", "bike", "car", "commercial"}

// Reminder is the single scheduled follow-up attached to a booking.
// Setting a new reminder replaces the previous one wholesale; a reminder
// instance that reached sent=true never transitions again.
type Reminder struct {
	ScheduledAt time.Time  `json:"scheduledAt"`
	Note        string     `json:"note,omitempty"`
	Sent        bool       `json:"sent"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
}

type Booking struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	City      string `json:"city,omitempty"`

	// Department plus free-form department-specific answers
	// (loan amount, registration number, sum insured, ...).
	Department string            `json:"department"`
	Details    map[string]string `json:"details,omitempty"`

	ContactMethod string `json:"contactMethod,omitempty"`
	TimeSlot      string `json:"timeSlot,omitempty"`
	Notes         string `json:"notes,omitempty"`
	ReferredFrom  string `json:"referredFrom,omitempty"`

	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	AdminNotes  []CallNote `json:"adminNotes"`
	Reminder    *Reminder  `json:"reminder,omitempty"`

	Source    string    `json:"source"`
	IPAddress string    `json:"ipAddress,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBooking builds a booking in its initial state and assigns the
// customer-facing reference (CC-<year>-<suffix>).
func NewBooking(name, phone, email, city, department string, details map[string]string, contactMethod, timeSlot, notes, referredFrom, ip string) *Booking {
	now := time.Now()
	id := uuid.New().String()
	return &Booking{
		ID:            id,
		Reference:     BookingReference(id, now),
		Name:          name,
		Phone:         phone,
		Email:         email,
		City:          city,
		Department:    department,
		Details:       details,
		ContactMethod: contactMethod,
		TimeSlot:      timeSlot,
		Notes:         notes,
		ReferredFrom:  referredFrom,
		Status:        BookingStatusNew,
		AdminNotes:    []CallNote{},
		Source:        "book-form",
		IPAddress:     ip,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BookingReference derives the short reference shown to the customer
// from the booking id, e.g. CC-2026-4F2A.
func BookingReference(id string, t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 4 {
		suffix = suffix[:4]
	}
	return fmt.Sprintf("CC-%d-%s", t.Year(), suffix)
}

func IsValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidDepartment(s string) bool {
	for _, v := range Departments {
		if v == s {
			return true
		}
	}
	return false
}
