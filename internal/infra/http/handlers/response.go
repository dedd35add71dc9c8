package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

// All endpoints answer with the {success, ...} envelope the admin panel
// expects.

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError maps the usecase taxonomy onto HTTP statuses: validation
// 422 with per-field errors, unknown id 404, everything else a 500 that
// hides detail in production.
func writeError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		switch domainErr.Code {
		case usecase.CodeValidation:
			fields := make([]fieldError, 0, len(domainErr.Fields))
			for _, f := range domainErr.Fields {
				fields = append(fields, fieldError{Field: f.Field, Message: f.Message})
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"success": false,
				"message": domainErr.Message,
				"errors":  fields,
			})
			return
		case usecase.CodeNotFound:
			writeFailure(w, http.StatusNotFound, domainErr.Message)
			return
		}
	}

	log.Printf("❌ Server error: %v", err)
	message := "Something went wrong. Please try again."
	if os.Getenv("APP_ENV") != "production" {
		message = err.Error()
	}
	writeFailure(w, http.StatusInternalServerError, message)
}
