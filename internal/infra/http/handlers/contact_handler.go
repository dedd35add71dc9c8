package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/covercredit/cover-credit-backend/internal/infra/http/middleware"
	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

type ContactHandler struct {
	submit      *usecase.SubmitContactUseCase
	rateLimiter *RateLimiter
}

func NewContactHandler(submit *usecase.SubmitContactUseCase, limiter *RateLimiter) *ContactHandler {
	return &ContactHandler{submit: submit, rateLimiter: limiter}
}

// Submit handles POST /api/contact from the public website form.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeFailure(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.SubmitContactInput
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

	middleware.RecordLeadCaptured("contact")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      output.ID,
		"message": output.Message,
	})
}
