package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/covercredit/cover-credit-backend/internal/infra/http/middleware"
)

// AuthHandler issues and verifies admin sessions. There is a single
// admin account configured through the environment; this is a small
// brokerage back office, not a multi-tenant product.
type AuthHandler struct {
	adminEmail    string
	adminPassword string
	jwtSecret     string
	tokenTTL      time.Duration
}

func NewAuthHandler(adminEmail, adminPassword, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		tokenTTL:      8 * time.Hour,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) == 1
	if !emailOK || !passOK {
		writeFailure(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := time.Now()
	claims := middleware.AdminClaims{
		Email: h.adminEmail,
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user": map[string]string{
			"email": h.adminEmail,
			"role":  "admin",
		},
	})
}

// Verify sits behind RequireAdmin; reaching it means the token is good.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Access denied. Please log in.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]string{
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}
