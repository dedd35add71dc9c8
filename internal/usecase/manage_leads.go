package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/covercredit/cover-credit-backend/internal/entity"
)

// ManageLeadsUseCase validates and dispatches admin mutations. Each
// mutation type has its own field allow-list; anything outside it is
// rejected, not silently dropped.
type ManageLeadsUseCase struct {
	Contacts ContactRepositoryInterface
	Bookings BookingRepositoryInterface
}

func NewManageLeadsUseCase(contacts ContactRepositoryInterface, bookings BookingRepositoryInterface) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{Contacts: contacts, Bookings: bookings}
}

func (uc *ManageLeadsUseCase) ListContacts(ctx context.Context, filter ListFilter) ([]*entity.Contact, Pagination, error) {
	items, total, err := uc.Contacts.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, newDatabaseError(err)
	}
	return items, NewPagination(filter.Page, filter.Limit, total), nil
}

func (uc *ManageLeadsUseCase) ListBookings(ctx context.Context, filter ListFilter) ([]*entity.Booking, Pagination, error) {
	items, total, err := uc.Bookings.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, newDatabaseError(err)
	}
	return items, NewPagination(filter.Page, filter.Limit, total), nil
}

// UpdateContact applies an allow-listed PATCH body. Only "status" may
// be changed on a contact; the first transition into "contacted" stamps
// contactedAt and later transitions leave the stamp alone.
func (uc *ManageLeadsUseCase) UpdateContact(ctx context.Context, id string, fields map[string]json.RawMessage) (*entity.Contact, error) {
	var upd ContactUpdate
	for key, raw := range fields {
		switch key {
		case "status":
			var status string
			if err := json.Unmarshal(raw, &status); err != nil || !entity.IsValidContactStatus(status) {
				return nil, newFieldError("status", "is not a valid contact status")
			}
			upd.Status = &status
			upd.StampContacted = status == entity.ContactStatusContacted
		default:
			return nil, newFieldError(key, "cannot be updated")
		}
	}
	if upd.Status == nil {
		return nil, newFieldError("status", "is required")
	}

	contact, err := uc.Contacts.Update(ctx, id, upd)
	if err != nil {
		return nil, translateRepoError(err, "contact")
	}
	return contact, nil
}

// UpdateBooking accepts "status" and "scheduledAt" only. The first
// transition into "confirmed" stamps confirmedAt.
func (uc *ManageLeadsUseCase) UpdateBooking(ctx context.Context, id string, fields map[string]json.RawMessage) (*entity.Booking, error) {
	var upd BookingUpdate
	for key, raw := range fields {
		switch key {
		case "status":
			var status string
			if err := json.Unmarshal(raw, &status); err != nil || !entity.IsValidBookingStatus(status) {
				return nil, newFieldError("status", "is not a valid booking status")
			}
			upd.Status = &status
			upd.StampConfirmed = status == entity.BookingStatusConfirmed
		case "scheduledAt":
			var value *string
			if err := json.Unmarshal(raw, &value); err != nil {
				return nil, newFieldError("scheduledAt", "must be a timestamp or null")
			}
			upd.SetScheduledAt = true
			if value != nil {
				t, err := time.Parse(time.RFC3339, *value)
				if err != nil {
					return nil, newFieldError("scheduledAt", "must be a valid RFC3339 timestamp")
				}
				upd.ScheduledAt = &t
			}
		default:
			return nil, newFieldError(key, "cannot be updated")
		}
	}
	if upd.Status == nil && !upd.SetScheduledAt {
		return nil, newFieldError("body", "has nothing to update")
	}

	booking, err := uc.Bookings.Update(ctx, id, upd)
	if err != nil {
		return nil, translateRepoError(err, "booking")
	}
	return booking, nil
}

func (uc *ManageLeadsUseCase) AppendContactNote(ctx context.Context, id string, input AppendNoteInput) (*entity.Contact, error) {
	text, err := cleanNoteText(input.Text)
	if err != nil {
		return nil, err
	}
	contact, repoErr := uc.Contacts.AppendNote(ctx, id, text, time.Now())
	if repoErr != nil {
		return nil, translateRepoError(repoErr, "contact")
	}
	return contact, nil
}

func (uc *ManageLeadsUseCase) AppendBookingNote(ctx context.Context, id string, input AppendNoteInput) (*entity.Booking, error) {
	text, err := cleanNoteText(input.Text)
	if err != nil {
		return nil, err
	}
	booking, repoErr := uc.Bookings.AppendNote(ctx, id, text, time.Now())
	if repoErr != nil {
		return nil, translateRepoError(repoErr, "booking")
	}
	return booking, nil
}

// SetReminder replaces the booking's reminder wholesale. The scheduled
// time must be strictly in the future; a past time is rejected, never
// fired immediately.
func (uc *ManageLeadsUseCase) SetReminder(ctx context.Context, id string, input SetReminderInput) (*entity.Booking, error) {
	scheduledAt, err := time.Parse(time.RFC3339, input.ScheduledAt)
	if err != nil {
		return nil, newFieldError("scheduledAt", "must be a valid RFC3339 timestamp")
	}
	if !scheduledAt.After(time.Now()) {
		return nil, newFieldError("scheduledAt", "must be in the future")
	}
	note := strings.TrimSpace(input.Note)
	if len(note) > maxReminderMsg {
		return nil, newFieldError("note", "is too long (max 500 chars)")
	}

	booking, repoErr := uc.Bookings.SetReminder(ctx, id, entity.Reminder{
		ScheduledAt: scheduledAt,
		Note:        note,
		Sent:        false,
	})
	if repoErr != nil {
		return nil, translateRepoError(repoErr, "booking")
	}
	return booking, nil
}

// Deletes are hard and idempotent at the store layer; the handler
// reports success either way, matching the admin panel's expectations.
func (uc *ManageLeadsUseCase) DeleteContact(ctx context.Context, id string) error {
	if err := uc.Contacts.Delete(ctx, id); err != nil {
		return newDatabaseError(err)
	}
	return nil
}

func (uc *ManageLeadsUseCase) DeleteBooking(ctx context.Context, id string) error {
	if err := uc.Bookings.Delete(ctx, id); err != nil {
		return newDatabaseError(err)
	}
	return nil
}

func cleanNoteText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", newFieldError("text", "is required")
	}
	if len(text) > maxCallNote {
		return "", newFieldError("text", "is too long (max 2000 chars)")
	}
	return text, nil
}

func translateRepoError(err error, what string) error {
	if errors.Is(err, entity.ErrNotFound) {
		return newNotFoundError(what)
	}
	return newDatabaseError(err)
}
