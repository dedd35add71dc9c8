package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/covercredit/cover-credit-backend/internal/infra/http/middleware"
	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

type BookingHandler struct {
	submit      *usecase.SubmitBookingUseCase
	rateLimiter *RateLimiter
}

func NewBookingHandler(submit *usecase.SubmitBookingUseCase, limiter *RateLimiter) *BookingHandler {
	return &BookingHandler{submit: submit, rateLimiter: limiter}
}

// Submit handles POST /api/book from the public callback form.
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeFailure(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.SubmitBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	input.IPAddress = clientIP

	output, err := h.submit.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCaptured("booking")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"id":        output.ID,
		"reference": output.Reference,
		"message":   output.Message,
	})
}
