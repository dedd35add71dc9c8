package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

// AdminHandler serves the admin panel: lead listings, lifecycle
// mutations, call notes, reminders and the dashboard.
type AdminHandler struct {
	leads *usecase.ManageLeadsUseCase
	stats *usecase.StatsUseCase
}

func NewAdminHandler(leads *usecase.ManageLeadsUseCase, stats *usecase.StatsUseCase) *AdminHandler {
	return &AdminHandler{leads: leads, stats: stats}
}

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ParseContactListQuery(r.URL.Query())
	contacts, pagination, err := h.leads.ListContacts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       contacts,
		"pagination": pagination,
	})
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ParseBookingListQuery(r.URL.Query())
	bookings, pagination, err := h.leads.ListBookings(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       bookings,
		"pagination": pagination,
	})
}

func (h *AdminHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodePatchBody(w, r)
	if !ok {
		return
	}
	contact, err := h.leads.UpdateContact(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contact)
}

func (h *AdminHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodePatchBody(w, r)
	if !ok {
		return
	}
	booking, err := h.leads.UpdateBooking(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, booking)
}

func (h *AdminHandler) AddContactNote(w http.ResponseWriter, r *http.Request) {
	var input usecase.AppendNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	contact, err := h.leads.AppendContactNote(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contact)
}

func (h *AdminHandler) AddBookingNote(w http.ResponseWriter, r *http.Request) {
	var input usecase.AppendNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	booking, err := h.leads.AppendBookingNote(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, booking)
}

// SetReminder handles PUT /api/admin/bookings/{id}/reminder. The new
// reminder replaces any previous one on the booking.
func (h *AdminHandler) SetReminder(w http.ResponseWriter, r *http.Request) {
	var input usecase.SetReminderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	booking, err := h.leads.SetReminder(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, booking)
}

func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.leads.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Contact deleted")
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.leads.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Booking deleted")
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	output, err := h.stats.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":              true,
		"stats":                output.Stats,
		"contactsByInterest":   output.ContactsByInterest,
		"bookingsByDepartment": output.BookingsByDepartment,
		"recentContacts":       output.RecentContacts,
		"recentBookings":       output.RecentBookings,
	})
}

func decodePatchBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	return fields, true
}
